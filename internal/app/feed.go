package app

import (
	"sync"

	"quiz-manager/internal/domain"
)

// feedHub fans submission events out to per-quiz subscribers. Feeds are
// created lazily on first subscribe and dropped once the last subscriber
// cancels, so idle quizzes cost nothing.
type feedHub struct {
	mu    sync.Mutex
	feeds map[string]map[chan domain.SubmissionEvent]struct{}
}

func newFeedHub() *feedHub {
	return &feedHub{
		feeds: make(map[string]map[chan domain.SubmissionEvent]struct{}),
	}
}

func (h *feedHub) subscribe(quizID string) (<-chan domain.SubmissionEvent, func()) {
	ch := make(chan domain.SubmissionEvent, 8)

	h.mu.Lock()
	subscribers, ok := h.feeds[quizID]
	if !ok {
		subscribers = make(map[chan domain.SubmissionEvent]struct{})
		h.feeds[quizID] = subscribers
	}
	subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subscribers, ok := h.feeds[quizID]; ok {
			if _, ok := subscribers[ch]; ok {
				delete(subscribers, ch)
				close(ch)
			}
			if len(subscribers) == 0 {
				delete(h.feeds, quizID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *feedHub) publish(quizID string, event domain.SubmissionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.feeds[quizID] {
		select {
		case ch <- event:
		default:
			// Drop the oldest buffered event so slow clients never block publishing.
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
