package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quiz-manager/internal/domain"
)

// QuizWriter is the slice of the quiz service the loader needs.
type QuizWriter interface {
	CreateQuiz(ctx context.Context, title string) domain.QuizSummary
	AddQuestion(ctx context.Context, quizID string, draft domain.QuestionDraft) (domain.QuestionView, error)
}

// File is a YAML fixture of demo quizzes loaded at startup.
type File struct {
	Quizzes []QuizFixture `yaml:"quizzes"`
}

type QuizFixture struct {
	Title     string            `yaml:"title"`
	Questions []QuestionFixture `yaml:"questions"`
}

type QuestionFixture struct {
	Text            string          `yaml:"text"`
	Options         []OptionFixture `yaml:"options"`
	CorrectOptionID string          `yaml:"correctOptionId"`
}

type OptionFixture struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Parse reads and validates a fixture file.
func Parse(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// Validate applies the same presence and shape checks the HTTP boundary
// enforces, so fixtures cannot smuggle in state the API could not create.
func (f File) Validate() error {
	for i, quiz := range f.Quizzes {
		if quiz.Title == "" {
			return fmt.Errorf("quiz %d: title is required", i)
		}
		for j, question := range quiz.Questions {
			if question.Text == "" {
				return fmt.Errorf("quiz %q question %d: text is required", quiz.Title, j)
			}
			if len(question.Options) < 2 {
				return fmt.Errorf("quiz %q question %d: at least 2 options are required", quiz.Title, j)
			}
			seen := make(map[string]struct{}, len(question.Options))
			for _, option := range question.Options {
				if option.ID == "" || option.Text == "" {
					return fmt.Errorf("quiz %q question %d: every option needs an id and text", quiz.Title, j)
				}
				if _, dup := seen[option.ID]; dup {
					return fmt.Errorf("quiz %q question %d: duplicate option id %q", quiz.Title, j, option.ID)
				}
				seen[option.ID] = struct{}{}
			}
			if question.CorrectOptionID == "" {
				return fmt.Errorf("quiz %q question %d: correctOptionId is required", quiz.Title, j)
			}
		}
	}
	return nil
}

// Apply loads the fixtures through the ordinary service operations so they
// run the same reference checks as API clients.
func (f File) Apply(ctx context.Context, w QuizWriter) error {
	for _, quiz := range f.Quizzes {
		summary := w.CreateQuiz(ctx, quiz.Title)
		for _, question := range quiz.Questions {
			options := make([]domain.Option, 0, len(question.Options))
			for _, option := range question.Options {
				options = append(options, domain.Option{ID: option.ID, Text: option.Text})
			}
			_, err := w.AddQuestion(ctx, summary.ID, domain.QuestionDraft{
				Text:            question.Text,
				Options:         options,
				CorrectOptionID: question.CorrectOptionID,
			})
			if err != nil {
				return fmt.Errorf("quiz %q: %w", quiz.Title, err)
			}
		}
	}
	return nil
}
