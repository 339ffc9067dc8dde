package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-manager/internal/app"
	"quiz-manager/internal/domain"
)

// QuestionReader serves question projections for the read path and accepts
// invalidations after writes. Satisfied by both cache implementations.
type QuestionReader interface {
	Questions(ctx context.Context, quizID string) ([]domain.QuestionView, error)
	Invalidate(ctx context.Context, quizID string)
}

// Handler maps the REST surface onto the quiz service. Boundary validation
// (field presence and shape) happens here; reference checks belong to the
// service.
type Handler struct {
	service   *app.QuizService
	questions QuestionReader
	log       *zap.Logger
}

func NewHandler(service *app.QuizService, questions QuestionReader, log *zap.Logger) *Handler {
	return &Handler{service: service, questions: questions, log: log}
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(h *Handler, feed *FeedHandler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/quizzes", h.CreateQuiz)
	r.GET("/quizzes", h.ListQuizzes)
	r.POST("/quizzes/:quizId/questions", h.AddQuestion)
	r.GET("/quizzes/:quizId/questions", h.GetQuestions)
	r.POST("/quizzes/:quizId/submit", h.SubmitAnswers)
	r.GET("/quizzes/:quizId/feed", feed.ServeFeed)

	return r
}

type createQuizRequest struct {
	Title string `json:"title"`
}

type optionPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type addQuestionRequest struct {
	Text            string          `json:"text"`
	Options         []optionPayload `json:"options"`
	CorrectOptionID string          `json:"correctOptionId"`
}

type answerPayload struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

type submitRequest struct {
	Answers *[]answerPayload `json:"answers"`
}

func (h *Handler) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	summary := h.service.CreateQuiz(c.Request.Context(), req.Title)
	c.JSON(http.StatusCreated, summary)
}

func (h *Handler) ListQuizzes(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListQuizzes(c.Request.Context()))
}

func (h *Handler) AddQuestion(c *gin.Context) {
	quizID := c.Param("quizId")

	var req addQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text, options, and correctOptionId are required"})
		return
	}
	if req.Text == "" || req.Options == nil || req.CorrectOptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text, options, and correctOptionId are required"})
		return
	}
	if len(req.Options) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Options must be an array of at least 2 items"})
		return
	}
	options := make([]domain.Option, 0, len(req.Options))
	seen := make(map[string]struct{}, len(req.Options))
	for _, option := range req.Options {
		if option.ID == "" || option.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every option needs an id and text"})
			return
		}
		if _, dup := seen[option.ID]; dup {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Option IDs must be unique within a question"})
			return
		}
		seen[option.ID] = struct{}{}
		options = append(options, domain.Option{ID: option.ID, Text: option.Text})
	}

	view, err := h.service.AddQuestion(c.Request.Context(), quizID, domain.QuestionDraft{
		Text:            req.Text,
		Options:         options,
		CorrectOptionID: req.CorrectOptionID,
	})
	if err != nil {
		// Both a missing quiz and a bad correct option are client mistakes
		// on this route, so they map to 400 rather than 404.
		h.writeError(c, err, http.StatusBadRequest)
		return
	}
	h.questions.Invalidate(c.Request.Context(), quizID)
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetQuestions(c *gin.Context) {
	views, err := h.questions.Questions(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		h.writeError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) SubmitAnswers(c *gin.Context) {
	quizID := c.Param("quizId")

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers must be an array"})
		return
	}
	answers := make([]domain.Answer, 0, len(*req.Answers))
	for _, answer := range *req.Answers {
		answers = append(answers, domain.Answer{
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
		})
	}

	result, err := h.service.SubmitAnswers(c.Request.Context(), quizID, answers)
	if err != nil {
		h.writeError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError translates service errors to the documented status codes.
// notFoundStatus varies by route: a missing quiz is 404 on reads but 400 on
// writes that reference it.
func (h *Handler) writeError(c *gin.Context, err error, notFoundStatus int) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		c.JSON(notFoundStatus, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCorrectOption), errors.Is(err, domain.ErrAnswerCountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("unexpected service error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
