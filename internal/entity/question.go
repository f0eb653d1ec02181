package entity

import (
	"fmt"
	"strings"
)

// QuestionType distinguishes true/false questions from four-option ones.
type QuestionType string

const (
	QuestionTypeBoolean  QuestionType = "boolean"
	QuestionTypeMultiple QuestionType = "multiple"
)

// ParseQuestionType converts a provider type string into a QuestionType.
func ParseQuestionType(raw string) (QuestionType, error) {
	switch t := QuestionType(strings.ToLower(strings.TrimSpace(raw))); t {
	case QuestionTypeBoolean, QuestionTypeMultiple:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, raw)
	}
}

// Difficulty mirrors the provider's three difficulty tiers.
type Difficulty string

const (
	DifficultyUnspecified Difficulty = ""
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyHard        Difficulty = "hard"
)

// ParseDifficulty converts an arbitrary string into a supported Difficulty value.
func ParseDifficulty(raw string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyUnspecified
	}
}

// Answer strings the provider uses for boolean questions.
const (
	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// Question is a single trivia question with all provider text already
// entity-decoded, so display and answer comparison share one representation.
// Immutable once built from the provider payload.
type Question struct {
	Category         string
	Type             QuestionType
	Difficulty       Difficulty
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Answers returns the incorrect answers plus the correct one, in stable
// order. Presentation shuffling is the caller's concern.
func (q Question) Answers() []string {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.IncorrectAnswers...)
	return append(answers, q.CorrectAnswer)
}

// IsCorrect reports whether answer matches the correct answer exactly. Both
// sides are decoded at construction time, so plain string equality is the
// whole comparison.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Validate checks the structural rules the provider promises: a boolean
// question carries exactly one incorrect answer, a multiple-choice one three.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: empty correct answer", ErrInvalidQuestion)
	}
	switch q.Type {
	case QuestionTypeBoolean:
		if len(q.IncorrectAnswers) != 1 {
			return fmt.Errorf("%w: boolean question has %d incorrect answers, want 1", ErrInvalidQuestion, len(q.IncorrectAnswers))
		}
	case QuestionTypeMultiple:
		if len(q.IncorrectAnswers) != 3 {
			return fmt.Errorf("%w: multiple-choice question has %d incorrect answers, want 3", ErrInvalidQuestion, len(q.IncorrectAnswers))
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, string(q.Type))
	}
	return nil
}
