package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		Provider: config.ProviderConfig{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestFetchOne_BooleanQuestion(t *testing.T) {
	body := `{
		"response_code": 0,
		"results": [{
			"type": "boolean",
			"difficulty": "easy",
			"category": "Science &amp; Nature",
			"question": "An octopus has three hearts.",
			"correct_answer": "True",
			"incorrect_answers": ["False"]
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.php" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("amount"); got != "1" {
			t.Errorf("expected amount=1, got %q", got)
		}
		if got := r.URL.Query().Get("category"); got != "17" {
			t.Errorf("expected category=17, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	q, err := client.FetchOne(context.Background(), 17)
	if err != nil {
		t.Fatalf("FetchOne returned error: %v", err)
	}

	if q.Category != "Science and Nature" {
		t.Fatalf("expected decoded category, got %q", q.Category)
	}
	if q.Type != entity.QuestionTypeBoolean {
		t.Fatalf("expected boolean type, got %q", q.Type)
	}
	if q.Difficulty != entity.DifficultyEasy {
		t.Fatalf("expected easy difficulty, got %q", q.Difficulty)
	}
	if q.CorrectAnswer != entity.AnswerTrue {
		t.Fatalf("expected correct answer True, got %q", q.CorrectAnswer)
	}
}

func TestFetchOne_MultipleChoiceDecodesEntities(t *testing.T) {
	body := `{
		"response_code": 0,
		"results": [{
			"type": "multiple",
			"difficulty": "medium",
			"category": "Entertainment: Video Games",
			"question": "What does &quot;RPG&quot; stand for?",
			"correct_answer": "Role-Playing Game",
			"incorrect_answers": ["Rocket-Propelled Grenade", "Really Powerful Gun", "Random Player Generator"]
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	q, err := client.FetchOne(context.Background(), 15)
	if err != nil {
		t.Fatalf("FetchOne returned error: %v", err)
	}

	if q.Text != `What does "RPG" stand for?` {
		t.Fatalf("expected decoded question text, got %q", q.Text)
	}
	wantIncorrect := []string{"Rocket-Propelled Grenade", "Really Powerful Gun", "Random Player Generator"}
	if !reflect.DeepEqual(q.IncorrectAnswers, wantIncorrect) {
		t.Fatalf("expected incorrect answers %v, got %v", wantIncorrect, q.IncorrectAnswers)
	}
}

func TestFetchOne_ResponseCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.FetchOne(context.Background(), 40)
	if err == nil {
		t.Fatalf("expected error for response_code 1")
	}
	if !strings.Contains(err.Error(), "no results") {
		t.Fatalf("expected no results reason, got %v", err)
	}
}

func TestFetchOne_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 0, "results": []}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.FetchOne(context.Background(), 9)
	if err == nil || !strings.Contains(err.Error(), "empty result set") {
		t.Fatalf("expected empty result set error, got %v", err)
	}
}

func TestFetchOne_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.FetchOne(context.Background(), 9)
	if err == nil || !strings.Contains(err.Error(), "unexpected status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetchOne_InvalidQuestionType(t *testing.T) {
	body := `{
		"response_code": 0,
		"results": [{
			"type": "essay",
			"difficulty": "hard",
			"category": "History",
			"question": "Describe the fall of Rome.",
			"correct_answer": "n/a",
			"incorrect_answers": []
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.FetchOne(context.Background(), 23)
	if !errors.Is(err, entity.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"bad scheme", "ftp://opentdb.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				Provider: config.ProviderConfig{BaseURL: tc.baseURL, Timeout: time.Second},
			}
			if _, err := NewClient(cfg); err == nil {
				t.Fatalf("expected error for base URL %q", tc.baseURL)
			}
		})
	}
}
