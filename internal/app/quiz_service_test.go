package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-manager/internal/app"
	"quiz-manager/internal/domain"
)

func TestCreateQuizAndList(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()

	first := service.CreateQuiz(ctx, "Math Quiz")
	second := service.CreateQuiz(ctx, "Capitals")

	if first.ID == "" || second.ID == "" {
		t.Fatalf("expected generated ids, got %q and %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("expected unique ids, both were %q", first.ID)
	}

	quizzes := service.ListQuizzes(ctx)
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	if quizzes[0].Title != "Math Quiz" || quizzes[1].Title != "Capitals" {
		t.Fatalf("expected insertion order, got %+v", quizzes)
	}
}

func TestAddQuestionHidesCorrectOption(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")

	view, err := service.AddQuestion(ctx, quiz.ID, mathQuestion())
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if view.ID == "" || view.Text != "What is 2+2?" || len(view.Options) != 2 {
		t.Fatalf("unexpected projection: %+v", view)
	}

	views, err := service.Questions(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(views) != 1 || views[0].ID != view.ID {
		t.Fatalf("expected the new question, got %+v", views)
	}
}

func TestAddQuestionRejectsUnknownCorrectOption(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")

	draft := mathQuestion()
	draft.CorrectOptionID = "z"
	_, err := service.AddQuestion(ctx, quiz.ID, draft)
	if !errors.Is(err, domain.ErrInvalidCorrectOption) {
		t.Fatalf("expected invalid correct option, got %v", err)
	}
}

func TestAddQuestionRejectsUnknownQuiz(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()

	_, err := service.AddQuestion(ctx, "nope", mathQuestion())
	if !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestQuestionsDistinguishesEmptyFromMissing(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Empty")

	views, err := service.Questions(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("questions on empty quiz: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no questions, got %+v", views)
	}

	if _, err := service.Questions(ctx, "nope"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestSubmitAnswersScoring(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")
	question, err := service.AddQuestion(ctx, quiz.ID, mathQuestion())
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	result, err := service.SubmitAnswers(ctx, quiz.ID, []domain.Answer{
		{QuestionID: question.ID, SelectedOptionID: "b"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Total != 1 {
		t.Fatalf("expected 1/1, got %+v", result)
	}

	result, err = service.SubmitAnswers(ctx, quiz.ID, []domain.Answer{
		{QuestionID: question.ID, SelectedOptionID: "a"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || result.Total != 1 {
		t.Fatalf("expected 0/1, got %+v", result)
	}
}

func TestSubmitAnswersCardinality(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")
	if _, err := service.AddQuestion(ctx, quiz.ID, mathQuestion()); err != nil {
		t.Fatalf("add question: %v", err)
	}

	_, err := service.SubmitAnswers(ctx, quiz.ID, nil)
	if !errors.Is(err, domain.ErrAnswerCountMismatch) {
		t.Fatalf("expected cardinality error for empty submission, got %v", err)
	}

	_, err = service.SubmitAnswers(ctx, quiz.ID, []domain.Answer{
		{QuestionID: "x", SelectedOptionID: "a"},
		{QuestionID: "y", SelectedOptionID: "b"},
	})
	if !errors.Is(err, domain.ErrAnswerCountMismatch) {
		t.Fatalf("expected cardinality error for oversized submission, got %v", err)
	}
}

func TestSubmitAnswersEmptyQuizEmptySubmission(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Empty")

	result, err := service.SubmitAnswers(ctx, quiz.ID, []domain.Answer{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || result.Total != 0 {
		t.Fatalf("expected 0/0, got %+v", result)
	}
}

func TestSubmitAnswersForeignQuestionScoresZero(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")
	if _, err := service.AddQuestion(ctx, quiz.ID, mathQuestion()); err != nil {
		t.Fatalf("add question: %v", err)
	}

	other := service.CreateQuiz(ctx, "Other")
	foreign, err := service.AddQuestion(ctx, other.ID, mathQuestion())
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	// Cardinality matches, but the answer points at another quiz's question.
	result, err := service.SubmitAnswers(ctx, quiz.ID, []domain.Answer{
		{QuestionID: foreign.ID, SelectedOptionID: "b"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || result.Total != 1 {
		t.Fatalf("expected foreign answer to score 0, got %+v", result)
	}
}

func TestSubmitAnswersOrderIndependent(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()
	quiz := service.CreateQuiz(ctx, "Math Quiz")

	q1, err := service.AddQuestion(ctx, quiz.ID, mathQuestion())
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	q2, err := service.AddQuestion(ctx, quiz.ID, domain.QuestionDraft{
		Text: "What is 7x6?",
		Options: []domain.Option{
			{ID: "a", Text: "42"},
			{ID: "b", Text: "48"},
		},
		CorrectOptionID: "a",
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}

	forward := []domain.Answer{
		{QuestionID: q1.ID, SelectedOptionID: "b"},
		{QuestionID: q2.ID, SelectedOptionID: "b"},
	}
	reversed := []domain.Answer{forward[1], forward[0]}

	r1, err := service.SubmitAnswers(ctx, quiz.ID, forward)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	r2, err := service.SubmitAnswers(ctx, quiz.ID, reversed)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("expected order independence, got %+v vs %+v", r1, r2)
	}
	if r1.Score != 1 || r1.Total != 2 {
		t.Fatalf("expected 1/2, got %+v", r1)
	}
}

func TestSubmitAnswersUnknownQuiz(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService()

	_, err := service.SubmitAnswers(ctx, "nope", nil)
	if !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func mathQuestion() domain.QuestionDraft {
	return domain.QuestionDraft{
		Text: "What is 2+2?",
		Options: []domain.Option{
			{ID: "a", Text: "3"},
			{ID: "b", Text: "4"},
		},
		CorrectOptionID: "b",
	}
}
