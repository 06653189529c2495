package domain

import "time"

// Fixed assessment parameters; the portal UI relies on these exact values.
const (
	// QuestionCount is how many questions every assessment presents,
	// regardless of how many the underlying bank holds.
	QuestionCount = 50
	// DurationSeconds is the time budget for one attempt (50 minutes).
	DurationSeconds = 50 * 60
	// OptionCount is the number of choices per question.
	OptionCount = 4
)

// Question is a single multiple-choice question. Once copied into an
// attempt it is immutable; bank edits never alter a running attempt.
type Question struct {
	ID            string   `json:"id"`
	SectionID     string   `json:"sectionId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// Clone returns a deep copy so attempt snapshots cannot alias bank data.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}

// Section is a subject area offering one assessment (e.g. html, css).
type Section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"isActive"`
}

// Result is the immutable scored outcome of a submitted attempt.
// JSON field names are the persistence contract shared with the portal UI.
type Result struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	UserName         string      `json:"userName"`
	SectionID        string      `json:"assessmentType"`
	Score            int         `json:"score"`
	TotalQuestions   int         `json:"totalQuestions"`
	Selections       map[int]int `json:"answers"`
	TimeSpentSeconds int         `json:"timeSpent"`
	CompletedAt      time.Time   `json:"completedAt"`
}

// ResultFilter narrows a result query; zero fields match everything.
type ResultFilter struct {
	UserID    string
	SectionID string
}

// Matches reports whether the result satisfies every set filter field.
func (f ResultFilter) Matches(r Result) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if f.SectionID != "" && r.SectionID != f.SectionID {
		return false
	}
	return true
}
