package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-manager/internal/app"
	"quiz-manager/internal/domain"
)

// FeedHandler streams submission results for a quiz over a websocket so
// clients can watch scores arrive live.
type FeedHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewFeedHandler(service *app.QuizService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string                 `json:"type"`
	Payload domain.SubmissionEvent `json:"payload"`
}

// ServeFeed subscribes the connection to a quiz's submission events.
// The quiz must exist before the upgrade so unknown ids still get a plain 404.
func (h *FeedHandler) ServeFeed(c *gin.Context) {
	quizID := c.Param("quizId")

	events, cancel, err := h.service.Subscribe(c.Request.Context(), quizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reader exists only to observe the close handshake.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "submission", Payload: event}); err != nil {
				h.log.Warn("ws write error", zap.Error(err))
				return
			}
		case <-closed:
			return
		}
	}
}
