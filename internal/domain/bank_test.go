package domain

import (
	"fmt"
	"testing"
)

func TestExtendBankCyclesSmallBank(t *testing.T) {
	bank := []Question{
		{ID: "html-q1", SectionID: "html", Text: "first", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0},
		{ID: "html-q2", SectionID: "html", Text: "second", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1},
	}

	extended := ExtendBank("html", bank, 50)
	if len(extended) != 50 {
		t.Fatalf("expected 50 questions, got %d", len(extended))
	}

	seen := make(map[string]bool)
	for i, q := range extended {
		src := bank[i%len(bank)]
		if q.Text != src.Text || q.CorrectOption != src.CorrectOption {
			t.Fatalf("item %d content mismatch: got %q want %q", i, q.Text, src.Text)
		}
		wantID := fmt.Sprintf("html-%d", i+1)
		if q.ID != wantID {
			t.Fatalf("item %d id = %q, want %q", i, q.ID, wantID)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate id %q", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestExtendBankCopiesContent(t *testing.T) {
	bank := []Question{
		{ID: "css-q1", SectionID: "css", Text: "orig", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2},
	}
	extended := ExtendBank("css", bank, 3)

	bank[0].Options[0] = "mutated"
	if extended[0].Options[0] != "a" {
		t.Fatalf("extended question aliases bank storage")
	}
}

func TestExtendBankEmpty(t *testing.T) {
	if got := ExtendBank("html", nil, 50); got != nil {
		t.Fatalf("expected nil for empty bank, got %d items", len(got))
	}
}
