package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"assessment-service/internal/domain"
	"assessment-service/internal/infra/memory"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionBank caches raw section banks in Redis and falls back to a loader
// on cache miss. Banks are stored as: SET bank:{sectionID} {json []Question}
// so ordering and full question content survive the round trip.
type QuestionBank struct {
	client *redis.Client
	loader memory.BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader memory.BankLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// QuestionsForSection returns exactly count questions for the section,
// cycling the cached bank when it is smaller than count.
func (b *QuestionBank) QuestionsForSection(ctx context.Context, sectionID string, count int) ([]domain.Question, error) {
	bank, err := b.loadBank(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if len(bank) == 0 {
		return nil, domain.ErrSectionUnavailable
	}
	return domain.ExtendBank(sectionID, bank, count), nil
}

func (b *QuestionBank) loadBank(ctx context.Context, sectionID string) ([]domain.Question, error) {
	key := b.bankKey(sectionID)

	if bank, ok := b.cachedBank(ctx, key); ok {
		return bank, nil
	}

	result, err, _ := b.sf.Do(sectionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := b.cachedBank(ctx, key); ok {
			return bank, nil
		}

		bank, err := b.loader.LoadBank(ctx, sectionID)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(bank); err == nil {
			_ = b.client.Set(ctx, key, data, b.ttlWithJitter()).Err()
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) cachedBank(ctx context.Context, key string) ([]domain.Question, bool) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var bank []domain.Question
	if err := json.Unmarshal(raw, &bank); err != nil || len(bank) == 0 {
		return nil, false
	}
	return bank, true
}

func (b *QuestionBank) bankKey(sectionID string) string {
	return "bank:" + sectionID
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
