package domain

import "time"

// Option represents a labeled choice within a question's option list.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question models an MCQ prompt belonging to exactly one quiz.
type Question struct {
	ID              string   `json:"id"`
	QuizID          string   `json:"quizId"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
}

// Quiz is a named, append-only collection of questions.
type Quiz struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	QuestionIDs []string `json:"questionIds"`
}

// QuizSummary is the listing projection of a quiz; question ids stay internal.
type QuizSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// QuestionView is the client-facing projection of a question.
// CorrectOptionID is deliberately absent so answers never leak.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// QuestionDraft carries the caller-supplied fields of a new question.
type QuestionDraft struct {
	Text            string
	Options         []Option
	CorrectOptionID string
}

// Answer is one submitted selection.
type Answer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// Result summarizes a graded submission.
type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// SubmissionEvent is broadcast to feed subscribers after each graded submission.
type SubmissionEvent struct {
	QuizID      string    `json:"quizId"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submittedAt"`
}
