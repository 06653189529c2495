package domain

import "testing"

func TestScoreEmptySelections(t *testing.T) {
	questions := sampleQuestions("html", 5)
	if got := Score(questions, map[int]int{}); got != 0 {
		t.Fatalf("expected 0 for empty selections, got %d", got)
	}
}

func TestScoreAllCorrect(t *testing.T) {
	questions := sampleQuestions("html", 7)
	selections := make(map[int]int)
	for i, q := range questions {
		selections[i] = q.CorrectOption
	}
	if got := Score(questions, selections); got != len(questions) {
		t.Fatalf("expected %d, got %d", len(questions), got)
	}
}

func TestScoreMixedAndBounds(t *testing.T) {
	questions := sampleQuestions("css", 4)
	selections := map[int]int{
		0: questions[0].CorrectOption,
		1: (questions[1].CorrectOption + 1) % OptionCount,
		3: questions[3].CorrectOption,
	}
	got := Score(questions, selections)
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got < 0 || got > len(questions) {
		t.Fatalf("score %d outside [0,%d]", got, len(questions))
	}
}

func sampleQuestions(sectionID string, n int) []Question {
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, Question{
			ID:            sectionID + "-src",
			SectionID:     sectionID,
			Text:          "pick one",
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: i % OptionCount,
		})
	}
	return questions
}
