package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-manager/internal/domain"
)

// QuizService owns the two in-memory collections (quizzes, questions) and
// implements the quiz-management use cases on top of them. Both collections
// are append-only and live for the lifetime of the process.
//
// HTTP handlers run on multiple goroutines, so a single RWMutex serializes
// every operation against the shared collections; scans and appends are not
// independently safe under concurrent mutation.
type QuizService struct {
	mu        sync.RWMutex
	quizzes   map[string]*domain.Quiz
	quizOrder []string
	questions []*domain.Question
	feeds     *feedHub
	newID     func() string
	now       func() time.Time
}

func NewQuizService() *QuizService {
	return &QuizService{
		quizzes: make(map[string]*domain.Quiz),
		feeds:   newFeedHub(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// NewQuizServiceWithClock is test-only for deterministic ids and timestamps.
func NewQuizServiceWithClock(newID func() string, now func() time.Time) *QuizService {
	s := NewQuizService()
	if newID != nil {
		s.newID = newID
	}
	if now != nil {
		s.now = now
	}
	return s
}

// CreateQuiz registers a new quiz with an empty question list.
// Title validation belongs to the transport boundary; this layer accepts
// whatever it is handed and never fails.
func (s *QuizService) CreateQuiz(_ context.Context, title string) domain.QuizSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz := &domain.Quiz{
		ID:          s.newID(),
		Title:       title,
		QuestionIDs: []string{},
	}
	s.quizzes[quiz.ID] = quiz
	s.quizOrder = append(s.quizOrder, quiz.ID)
	return domain.QuizSummary{ID: quiz.ID, Title: quiz.Title}
}

// ListQuizzes returns {id, title} projections in insertion order.
func (s *QuizService) ListQuizzes(_ context.Context) []domain.QuizSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.QuizSummary, 0, len(s.quizOrder))
	for _, id := range s.quizOrder {
		quiz := s.quizzes[id]
		summaries = append(summaries, domain.QuizSummary{ID: quiz.ID, Title: quiz.Title})
	}
	return summaries
}

// AddQuestion appends a question to the global collection and its id to the
// owning quiz. The correct option must be one of the supplied options, and
// the quiz must already exist.
func (s *QuizService) AddQuestion(_ context.Context, quizID string, draft domain.QuestionDraft) (domain.QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !optionExists(draft.Options, draft.CorrectOptionID) {
		return domain.QuestionView{}, domain.ErrInvalidCorrectOption
	}
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.QuestionView{}, domain.ErrQuizNotFound
	}

	question := &domain.Question{
		ID:              s.newID(),
		QuizID:          quizID,
		Text:            draft.Text,
		Options:         append([]domain.Option(nil), draft.Options...),
		CorrectOptionID: draft.CorrectOptionID,
	}
	s.questions = append(s.questions, question)
	quiz.QuestionIDs = append(quiz.QuestionIDs, question.ID)
	return projectQuestion(question), nil
}

// Questions returns the answer-hidden projections of a quiz's questions.
// Order follows the global question collection (insertion order), which is
// how the questions are derived: by filtering on quizId. A quiz with zero
// questions yields an empty slice; an unknown quiz is an error so callers
// can tell the two apart.
func (s *QuizService) Questions(_ context.Context, quizID string) ([]domain.QuestionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.quizzes[quizID]; !ok {
		return nil, domain.ErrQuizNotFound
	}
	views := make([]domain.QuestionView, 0)
	for _, question := range s.questions {
		if question.QuizID == quizID {
			views = append(views, projectQuestion(question))
		}
	}
	return views, nil
}

// SubmitAnswers grades a submission against a quiz. The submission must
// contain exactly as many answers as the quiz has questions; this is a
// strict cardinality check, not a coverage check by identifier. An answer
// whose questionId does not belong to the quiz contributes 0 silently.
func (s *QuizService) SubmitAnswers(_ context.Context, quizID string, answers []domain.Answer) (domain.Result, error) {
	s.mu.RLock()
	if _, ok := s.quizzes[quizID]; !ok {
		s.mu.RUnlock()
		return domain.Result{}, domain.ErrQuizNotFound
	}

	quizQuestions := make(map[string]*domain.Question)
	for _, question := range s.questions {
		if question.QuizID == quizID {
			quizQuestions[question.ID] = question
		}
	}
	s.mu.RUnlock()

	total := len(quizQuestions)
	if len(answers) != total {
		return domain.Result{}, domain.ErrAnswerCountMismatch
	}

	score := 0
	for _, answer := range answers {
		question, ok := quizQuestions[answer.QuestionID]
		if ok && question.CorrectOptionID == answer.SelectedOptionID {
			score++
		}
	}

	result := domain.Result{Score: score, Total: total}
	s.feeds.publish(quizID, domain.SubmissionEvent{
		QuizID:      quizID,
		Score:       result.Score,
		Total:       result.Total,
		SubmittedAt: s.now(),
	})
	return result, nil
}

// Subscribe returns a channel receiving submission events for a quiz.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, quizID string) (<-chan domain.SubmissionEvent, func(), error) {
	s.mu.RLock()
	_, ok := s.quizzes[quizID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, domain.ErrQuizNotFound
	}
	ch, cancel := s.feeds.subscribe(quizID)
	return ch, cancel, nil
}

func projectQuestion(q *domain.Question) domain.QuestionView {
	return domain.QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Options: append([]domain.Option(nil), q.Options...),
	}
}

func optionExists(options []domain.Option, optionID string) bool {
	for i := range options {
		if options[i].ID == optionID {
			return true
		}
	}
	return false
}
