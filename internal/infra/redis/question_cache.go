package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-manager/internal/domain"
)

// QuestionSource serves the authoritative answer-hidden question projections
// for a quiz (in practice the core quiz service).
type QuestionSource interface {
	Questions(ctx context.Context, quizID string) ([]domain.QuestionView, error)
}

// QuestionCache caches question projections in Redis (one JSON value per
// quiz) and falls back to the source on a miss. Stored as:
// SET quiz:{quizID}:questions {json} EX ttl
// Only projections reach Redis, never correct options, so a leaked cache
// still leaks no answers.
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Questions(ctx context.Context, quizID string) ([]domain.QuestionView, error) {
	key := c.key(quizID)

	if views, ok := c.fetch(ctx, key); ok {
		return views, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if views, ok := c.fetch(ctx, key); ok {
			return views, nil
		}

		views, err := c.source.Questions(ctx, quizID)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(views); err == nil {
			// best-effort write; a failed SET just means the next read misses
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuestionView), nil
}

// Invalidate drops the cached projections for a quiz after a write.
func (c *QuestionCache) Invalidate(ctx context.Context, quizID string) {
	_ = c.client.Del(ctx, c.key(quizID)).Err()
}

func (c *QuestionCache) fetch(ctx context.Context, key string) ([]domain.QuestionView, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var views []domain.QuestionView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false
	}
	return views, true
}

func (c *QuestionCache) key(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
