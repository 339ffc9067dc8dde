package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-manager/internal/domain"
)

// QuestionSource serves the authoritative answer-hidden question projections
// for a quiz (in practice the core quiz service).
type QuestionSource interface {
	Questions(ctx context.Context, quizID string) ([]domain.QuestionView, error)
}

// QuestionCache is an in-process read-through cache of question projections
// with TTL to keep hot GET paths off the core's lock. Only projections are
// cached; correct options never enter the cache. Errors (unknown quiz) are
// never cached either, so a quiz created after a miss is visible immediately.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedViews
}

type cachedViews struct {
	views     []domain.QuestionView
	expiresAt time.Time
}

func NewQuestionCache(source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedViews),
	}
}

func (c *QuestionCache) Questions(ctx context.Context, quizID string) ([]domain.QuestionView, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.views, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.views, nil
		}
		c.mu.RUnlock()

		views, err := c.source.Questions(ctx, quizID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[quizID] = cachedViews{
			views:     views,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuestionView), nil
}

// Invalidate drops the cached projections for a quiz. Called after a
// question is added so readers never see a stale question list longer
// than one in-flight request.
func (c *QuestionCache) Invalidate(_ context.Context, quizID string) {
	c.mu.Lock()
	delete(c.cache, quizID)
	c.mu.Unlock()
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
