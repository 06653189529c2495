package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"assessment-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// BankLoader fetches the raw question bank for a section from a backing
// store (e.g., Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, sectionID string) ([]domain.Question, error)
}

// QuestionBank caches raw banks with TTL to avoid repeated DB hits and
// serves padded question sets from them.
type QuestionBank struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionBank(loader BankLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

// QuestionsForSection returns exactly count questions for the section,
// cycling the underlying bank when it is smaller than count.
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
	now := b.clock()

	b.mu.RLock()
	if entry, ok := b.cache[sectionID]; ok && entry.expiresAt.After(now) {
		b.mu.RUnlock()
		return entry.questions, nil
	}
	b.mu.RUnlock()

	result, err, _ := b.sf.Do(sectionID, func() (interface{}, error) {
		now := b.clock()
		b.mu.RLock()
		if entry, ok := b.cache[sectionID]; ok && entry.expiresAt.After(now) {
			b.mu.RUnlock()
			return entry.questions, nil
		}
		b.mu.RUnlock()

		bank, err := b.loader.LoadBank(ctx, sectionID)
		if err != nil {
			return nil, err
		}

		b.mu.Lock()
		b.cache[sectionID] = cachedBank{
			questions: bank,
			expiresAt: now.Add(b.ttlWithJitter()),
		}
		b.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader is a simple loader backed by an in-memory map (useful for
// tests/demos).
type StaticBankLoader struct {
	banks map[string][]domain.Question
}

func NewStaticBankLoader(banks map[string][]domain.Question) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, sectionID string) ([]domain.Question, error) {
	if bank, ok := l.banks[sectionID]; ok && len(bank) > 0 {
		return bank, nil
	}
	return nil, domain.ErrSectionUnavailable
}
