package entity

import "errors"

// Domain errors for the game and its stats store.
var (
	ErrSourceExhausted = errors.New("question source exhausted")
	ErrCorruptStats    = errors.New("stats document is corrupt")
	ErrInvalidQuestion = errors.New("invalid question payload")
)
