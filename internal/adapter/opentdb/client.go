// Package opentdb fetches trivia questions from the Open Trivia Database
// HTTP API and maps them into domain questions.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
	"github.com/eslsoft/trivnet/pkg/htmltext"
)

const questionsPath = "/api.php"

// responseCodeText maps non-zero OpenTDB response codes to readable reasons.
var responseCodeText = map[int]string{
	1: "no results for the requested query",
	2: "invalid request parameter",
	3: "session token not found",
	4: "session token exhausted",
	5: "rate limited",
}

type rawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// Client talks to the Open Trivia Database API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a Client from the provider configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.Provider.BaseURL), "/")
	if base == "" {
		return nil, errors.New("provider base URL required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base URL %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("provider base URL %q must use http or https", base)
	}

	return &Client{
		baseURL: base,
		httpc:   &http.Client{Timeout: cfg.Provider.Timeout},
	}, nil
}

// FetchOne requests a single question drawn from the given category.
func (c *Client) FetchOne(ctx context.Context, category int) (entity.Question, error) {
	reqURL := fmt.Sprintf("%s%s?amount=1&category=%d", c.baseURL, questionsPath, category)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entity.Question{}, fmt.Errorf("opentdb: create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return entity.Question{}, fmt.Errorf("opentdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Question{}, fmt.Errorf("opentdb: unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.Question{}, fmt.Errorf("opentdb: decode response: %w", err)
	}

	if payload.ResponseCode != 0 {
		reason, ok := responseCodeText[payload.ResponseCode]
		if !ok {
			reason = "unexpected response"
		}
		return entity.Question{}, fmt.Errorf("opentdb: %s (response_code=%d)", reason, payload.ResponseCode)
	}
	if len(payload.Results) == 0 {
		return entity.Question{}, errors.New("opentdb: empty result set")
	}

	return toQuestion(payload.Results[0])
}

// toQuestion decodes HTML entities at the boundary so the rest of the
// program only ever sees plain text.
func toQuestion(raw rawQuestion) (entity.Question, error) {
	qtype, err := entity.ParseQuestionType(raw.Type)
	if err != nil {
		return entity.Question{}, err
	}

	q := entity.Question{
		Category:      htmltext.Decode(raw.Category),
		Type:          qtype,
		Difficulty:    entity.ParseDifficulty(raw.Difficulty),
		Text:          htmltext.Decode(raw.Question),
		CorrectAnswer: htmltext.Decode(raw.CorrectAnswer),
		IncorrectAnswers: lo.Map(raw.IncorrectAnswers, func(item string, _ int) string {
			return htmltext.Decode(item)
		}),
	}

	if err := q.Validate(); err != nil {
		return entity.Question{}, err
	}

	return q, nil
}
