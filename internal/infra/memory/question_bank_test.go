package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"assessment-service/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string][]domain.Question{
			"html": sampleBank(),
		}),
	}
	bank := NewQuestionBank(loader, time.Minute)

	if _, err := bank.QuestionsForSection(context.Background(), "html", 50); err != nil {
		t.Fatalf("questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := bank.QuestionsForSection(context.Background(), "html", 50); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionBankPadsToCount(t *testing.T) {
	bank := NewQuestionBank(NewStaticBankLoader(map[string][]domain.Question{
		"html": sampleBank(),
	}), time.Minute)

	questions, err := bank.QuestionsForSection(context.Background(), "html", 50)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 50 {
		t.Fatalf("expected 50 questions, got %d", len(questions))
	}
	if questions[0].Text != questions[2].Text {
		t.Fatalf("expected cycled content, got %q vs %q", questions[0].Text, questions[2].Text)
	}
	if questions[0].ID == questions[2].ID {
		t.Fatalf("cycled questions must have distinct ids")
	}
}

func TestQuestionBankUnknownSection(t *testing.T) {
	bank := NewQuestionBank(NewStaticBankLoader(map[string][]domain.Question{}), time.Minute)

	_, err := bank.QuestionsForSection(context.Background(), "html", 50)
	if !errors.Is(err, domain.ErrSectionUnavailable) {
		t.Fatalf("expected section unavailable, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
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
