package redis

import (
	"context"
	"testing"
	"time"

	"assessment-service/internal/domain"
	"assessment-service/internal/infra/memory"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionBankCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(map[string][]domain.Question{
			"html": sampleBank(),
		}),
	}
	bank := NewQuestionBank(client, loader, time.Minute)

	questions, err := bank.QuestionsForSection(context.Background(), "html", 50)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 50 {
		t.Fatalf("expected 50 questions, got %d", len(questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:html") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	if _, err := bank.QuestionsForSection(context.Background(), "html", 50); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestQuestionBankCachedContentSurvivesRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	bank := NewQuestionBank(client, memory.NewStaticBankLoader(map[string][]domain.Question{
		"html": sampleBank(),
	}), time.Minute)

	first, err := bank.QuestionsForSection(context.Background(), "html", 4)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}

	// A fresh instance must reconstruct identical content from redis alone.
	empty := NewQuestionBank(client, memory.NewStaticBankLoader(nil), time.Minute)
	second, err := empty.QuestionsForSection(context.Background(), "html", 4)
	if err != nil {
		t.Fatalf("questions from cache: %v", err)
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].CorrectOption != second[i].CorrectOption {
			t.Fatalf("cached bank diverged at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, sectionID string) ([]domain.Question, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, sectionID)
}

func sampleBank() []domain.Question {
	return []domain.Question{
		{ID: "html-q1", SectionID: "html", Text: "first", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0},
		{ID: "html-q2", SectionID: "html", Text: "second", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
