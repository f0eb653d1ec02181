// Package backup implements NDJSON export and import of the stats document.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/repository"
)

const formatVersion = 1

// Record kinds of the backup stream.
const (
	kindHeader   = "header"
	kindCategory = "category"
	kindQuestion = "question"
)

// Sections of the stats document that can be exported or imported
// independently.
const (
	SectionCategories = "categories"
	SectionQuestions  = "questions"
)

var allSections = []string{SectionCategories, SectionQuestions}

var errNoSectionsSelected = errors.New("backup: no sections selected")

// Service streams the stats document to and from NDJSON backups.
type Service struct {
	repo  repository.StatsRepository
	clock func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source of exported headers.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a backup service over the stats repository.
func NewService(repo repository.StatsRepository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("backup: stats repository is required")
	}
	svc := &Service{repo: repo, clock: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	sections []string
}

// WithSections restricts export to the provided section names.
func WithSections(sections []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(sections) == 0 {
			return
		}
		cfg.sections = append([]string{}, sections...)
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	sections []string
	replace  bool
}

// WithImportSections restricts import to the provided section names.
func WithImportSections(sections []string) ImportOption {
	return func(cfg *importConfig) {
		if len(sections) == 0 {
			return
		}
		cfg.sections = append([]string{}, sections...)
	}
}

// WithReplace discards the live sections instead of merging into them.
func WithReplace() ImportOption {
	return func(cfg *importConfig) {
		cfg.replace = true
	}
}

type record struct {
	Kind       string     `json:"kind"`
	Version    int        `json:"version,omitempty"`
	ExportedAt *time.Time `json:"exported_at,omitempty"`
	Categories int        `json:"categories,omitempty"`
	Questions  int        `json:"questions,omitempty"`
	Payload    any        `json:"payload,omitempty"`
}

type rawRecord struct {
	Kind       string          `json:"kind"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	Categories int             `json:"categories"`
	Questions  int             `json:"questions"`
	Payload    json.RawMessage `json:"payload"`
}

type categoryPayload struct {
	Name      string `json:"name"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

type questionPayload struct {
	Text string `json:"text"`
}

// Export writes the selected sections as one NDJSON stream: a header record
// first, then one record per category tally (sorted by name) and one per
// asked question.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	sections, err := selectSections(cfg.sections)
	if err != nil {
		return err
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(w)

	now := s.clock().UTC()
	header := record{
		Kind:       kindHeader,
		Version:    formatVersion,
		ExportedAt: &now,
	}
	if sections[SectionCategories] {
		header.Categories = len(doc.Categories)
	}
	if sections[SectionQuestions] {
		header.Questions = len(doc.Questions)
	}
	if err := writeRecord(writer, header); err != nil {
		return err
	}

	if sections[SectionCategories] {
		names := lo.Keys(doc.Categories)
		sort.Strings(names)
		for _, name := range names {
			tally := doc.Categories[name]
			rec := record{
				Kind: kindCategory,
				Payload: categoryPayload{
					Name:      name,
					Correct:   tally.Correct,
					Incorrect: tally.Incorrect,
				},
			}
			if err := writeRecord(writer, rec); err != nil {
				return err
			}
		}
	}

	if sections[SectionQuestions] {
		for _, text := range doc.Questions {
			if err := writeRecord(writer, record{Kind: kindQuestion, Payload: questionPayload{Text: text}}); err != nil {
				return err
			}
		}
	}

	return writer.Flush()
}

// Import reads an NDJSON backup and folds the selected sections into the
// stored document, merging by default or replacing with WithReplace. The
// header must be present with a supported version; unknown record kinds
// abort the import before anything is saved.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) error {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	sections, err := selectSections(cfg.sections)
	if err != nil {
		return err
	}

	incoming := &entity.StatsDocument{
		Categories: map[string]entity.Tally{},
		Questions:  []string{},
	}

	br := bufio.NewReader(r)
	var (
		headerSeen bool
		header     rawRecord
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read backup: %w", err)
		}

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 {
			var rec rawRecord
			if jsonErr := json.Unmarshal(trimmed, &rec); jsonErr != nil {
				return fmt.Errorf("decode record: %w", jsonErr)
			}

			switch rec.Kind {
			case kindHeader:
				headerSeen = true
				header = rec
			case kindCategory:
				if !sections[SectionCategories] {
					break
				}
				var payload categoryPayload
				if jsonErr := json.Unmarshal(rec.Payload, &payload); jsonErr != nil {
					return fmt.Errorf("decode category payload: %w", jsonErr)
				}
				if strings.TrimSpace(payload.Name) == "" {
					return errors.New("backup: category record without name")
				}
				tally := incoming.Categories[payload.Name]
				tally.Correct += payload.Correct
				tally.Incorrect += payload.Incorrect
				incoming.Categories[payload.Name] = tally
			case kindQuestion:
				if !sections[SectionQuestions] {
					break
				}
				var payload questionPayload
				if jsonErr := json.Unmarshal(rec.Payload, &payload); jsonErr != nil {
					return fmt.Errorf("decode question payload: %w", jsonErr)
				}
				if payload.Text == "" {
					return errors.New("backup: question record without text")
				}
				if !lo.Contains(incoming.Questions, payload.Text) {
					incoming.Questions = append(incoming.Questions, payload.Text)
				}
			default:
				return fmt.Errorf("backup: unknown record kind %q", rec.Kind)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !headerSeen {
		return errors.New("backup: missing header record")
	}
	if header.Version != formatVersion {
		return fmt.Errorf("backup: unsupported format version %d", header.Version)
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	if cfg.replace {
		applyReplace(doc, incoming, sections)
	} else {
		applyMerge(doc, incoming, sections)
	}
	retireSentinel(doc)

	return s.repo.Save(ctx, doc)
}

func applyReplace(doc, incoming *entity.StatsDocument, sections map[string]bool) {
	if sections[SectionCategories] {
		doc.Categories = incoming.Categories
	}
	if sections[SectionQuestions] {
		doc.Questions = incoming.Questions
	}
}

func applyMerge(doc, incoming *entity.StatsDocument, sections map[string]bool) {
	if sections[SectionCategories] {
		for name, add := range incoming.Categories {
			tally := doc.Categories[name]
			tally.Correct += add.Correct
			tally.Incorrect += add.Incorrect
			doc.Categories[name] = tally
		}
	}
	if sections[SectionQuestions] {
		for _, text := range incoming.Questions {
			if !lo.Contains(doc.Questions, text) {
				doc.Questions = append(doc.Questions, text)
			}
		}
	}
}

// retireSentinel drops the placeholder history entry once real questions
// exist, mirroring what recording a round does.
func retireSentinel(doc *entity.StatsDocument) {
	hasReal := lo.SomeBy(doc.Questions, func(text string) bool {
		return text != entity.SentinelQuestion
	})
	if hasReal {
		doc.Questions = lo.Without(doc.Questions, entity.SentinelQuestion)
	}
}

func selectSections(requested []string) (map[string]bool, error) {
	if len(requested) == 0 {
		selected := make(map[string]bool, len(allSections))
		for _, section := range allSections {
			selected[section] = true
		}
		return selected, nil
	}

	selected := make(map[string]bool, len(requested))
	for _, name := range requested {
		n := strings.TrimSpace(strings.ToLower(name))
		if n == "" {
			continue
		}
		if !lo.Contains(allSections, n) {
			return nil, fmt.Errorf("backup: unsupported section %q", name)
		}
		selected[n] = true
	}
	if len(selected) == 0 {
		return nil, errNoSectionsSelected
	}
	return selected, nil
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
