package entity

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/eslsoft/trivnet/pkg/htmltext"
)

// SentinelQuestion seeds the asked-question history of a fresh document so
// the duplicate check never runs against an empty list. It is dropped as soon
// as a real question is recorded and must never persist after that.
const SentinelQuestion = "Does 5 + 4 = 10 ?"

// Tally counts answers for a single category. The Go field names double as
// the persisted JSON keys.
type Tally struct {
	Correct   int `json:"Correct"`
	Incorrect int `json:"Incorrect"`
}

// Total returns how many answers the tally has recorded.
func (t Tally) Total() int { return t.Correct + t.Incorrect }

// StatsDocument is the whole persisted state of the game: per-category answer
// tallies keyed by sanitized category name, plus the asked-question history.
type StatsDocument struct {
	Categories map[string]Tally `json:"Categories"`
	Questions  []string         `json:"Questions"`
}

// NewStatsDocument returns a fresh document with the seeded question history.
func NewStatsDocument() *StatsDocument {
	return &StatsDocument{
		Categories: map[string]Tally{},
		Questions:  []string{SentinelQuestion},
	}
}

// Normalize upgrades documents written by older versions in place so both top
// level fields exist afterwards. Upgraded histories start empty; only brand
// new documents get the sentinel seed.
func (d *StatsDocument) Normalize() {
	if d.Categories == nil {
		d.Categories = map[string]Tally{}
	}
	if d.Questions == nil {
		d.Questions = []string{}
	}
}

// RecordAnswer increments the tally for category, creating it on first use.
// The category name is sanitized into its storage key first.
func (d *StatsDocument) RecordAnswer(category string, correct bool) {
	key := SanitizeCategory(category)
	tally := d.Categories[key]
	if correct {
		tally.Correct++
	} else {
		tally.Incorrect++
	}
	d.Categories[key] = tally
}

// RecordAskedQuestion adds the decoded question text to the history unless it
// is already present, and retires the sentinel seed once a real question
// exists.
func (d *StatsDocument) RecordAskedQuestion(text string) {
	decoded := htmltext.Decode(text)
	if !lo.Contains(d.Questions, decoded) {
		d.Questions = append(d.Questions, decoded)
	}
	if decoded != SentinelQuestion {
		d.Questions = lo.Without(d.Questions, SentinelQuestion)
	}
}

// HasAsked reports whether the decoded form of text is already in the history.
func (d *StatsDocument) HasAsked(text string) bool {
	return lo.Contains(d.Questions, htmltext.Decode(text))
}

// SanitizeCategory turns a provider category name into its storage key.
// Entities are decoded first so encoded punctuation cannot leak into keys,
// then every rune outside letters, digits, spaces and colons becomes an
// underscore.
func SanitizeCategory(name string) string {
	decoded := htmltext.Decode(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == ':' {
			return r
		}
		return '_'
	}, decoded)
}
