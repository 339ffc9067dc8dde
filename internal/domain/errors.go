package domain

import "errors"

// Error messages double as the user-visible `error` strings on the wire,
// so their wording is part of the API contract.
var (
	// ErrQuizNotFound is returned when a referenced quiz does not exist.
	ErrQuizNotFound = errors.New("Quiz not found")
	// ErrInvalidCorrectOption is returned when correctOptionId is not among the supplied options.
	ErrInvalidCorrectOption = errors.New("Invalid correct option ID")
	// ErrAnswerCountMismatch is returned when a submission does not cover every question exactly once.
	ErrAnswerCountMismatch = errors.New("Answers must cover all questions")
)
