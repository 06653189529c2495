package app

import (
	"sync"
	"time"

	"assessment-service/internal/domain"

	"github.com/google/uuid"
)

// Attempt is one user's single timed pass through a fixed, ordered question
// sequence. The question snapshot is fixed at creation; selections mutate
// only while the attempt is in progress, and exactly one transition to the
// submitted state is permitted.
type Attempt struct {
	id        string
	userID    string
	userName  string
	sectionID string
	questions []domain.Question
	duration  int
	startedAt time.Time

	mu         sync.Mutex
	selections map[int]int
	submitted  bool
	pending    *domain.Result // built on submit, cleared once durably persisted
	persisting bool
}

// NewAttempt is exported for infrastructure layers that need to seed attempts.
func NewAttempt(id, userID, userName, sectionID string, questions []domain.Question, durationSeconds int, startedAt time.Time) *Attempt {
	return newAttempt(id, userID, userName, sectionID, questions, durationSeconds, startedAt)
}

func newAttempt(id, userID, userName, sectionID string, questions []domain.Question, durationSeconds int, startedAt time.Time) *Attempt {
	snapshot := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		snapshot = append(snapshot, q.Clone())
	}
	return &Attempt{
		id:         id,
		userID:     userID,
		userName:   userName,
		sectionID:  sectionID,
		questions:  snapshot,
		duration:   durationSeconds,
		startedAt:  startedAt,
		selections: make(map[int]int),
	}
}

func (a *Attempt) ID() string        { return a.id }
func (a *Attempt) UserID() string    { return a.userID }
func (a *Attempt) UserName() string  { return a.userName }
func (a *Attempt) SectionID() string { return a.sectionID }

// StartedAt reports when the attempt clock began.
func (a *Attempt) StartedAt() time.Time { return a.startedAt }

// DurationSeconds is the attempt's fixed time budget.
func (a *Attempt) DurationSeconds() int { return a.duration }

// Questions returns a copy of the attempt's question snapshot.
func (a *Attempt) Questions() []domain.Question {
	out := make([]domain.Question, 0, len(a.questions))
	for _, q := range a.questions {
		out = append(out, q.Clone())
	}
	return out
}

// Selections returns a copy of the current answer selections.
func (a *Attempt) Selections() map[int]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[int]int, len(a.selections))
	for k, v := range a.selections {
		out[k] = v
	}
	return out
}

// Submitted reports whether the attempt has reached its terminal state.
func (a *Attempt) Submitted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submitted
}

// selectAnswer records the chosen option for a question, overwriting any
// prior choice. Last write wins until the attempt is submitted.
func (a *Attempt) selectAnswer(questionIndex, optionIndex int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.submitted {
		return domain.ErrAttemptClosed
	}
	if questionIndex < 0 || questionIndex >= len(a.questions) {
		return domain.ErrInvalidIndex
	}
	if optionIndex < 0 || optionIndex >= domain.OptionCount {
		return domain.ErrInvalidIndex
	}
	a.selections[questionIndex] = optionIndex
	return nil
}

// remaining computes seconds left on the attempt clock, clamped to zero.
func (a *Attempt) remaining(now time.Time) int {
	elapsed := int(now.Sub(a.startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	left := a.duration - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// claimSubmit performs the guarded InProgress -> Submitted transition and
// hands the caller a Result to persist. Both the expiry timer and the manual
// submit route through here, so a race between them yields exactly one
// Result: the loser observes ErrAlreadySubmitted. If a previous persistence
// round failed, the pending Result is handed out again for a retry.
func (a *Attempt) claimSubmit(now time.Time) (*domain.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.submitted {
		if a.pending != nil && !a.persisting {
			a.persisting = true
			return a.pending, nil
		}
		return nil, domain.ErrAlreadySubmitted
	}

	a.submitted = true
	a.persisting = true

	elapsed := int(now.Sub(a.startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > a.duration {
		elapsed = a.duration
	}

	selections := make(map[int]int, len(a.selections))
	for k, v := range a.selections {
		selections[k] = v
	}

	a.pending = &domain.Result{
		ID:               uuid.NewString(),
		UserID:           a.userID,
		UserName:         a.userName,
		SectionID:        a.sectionID,
		Score:            domain.Score(a.questions, a.selections),
		TotalQuestions:   len(a.questions),
		Selections:       selections,
		TimeSpentSeconds: elapsed,
		CompletedAt:      now,
	}
	return a.pending, nil
}

// finishPersist marks the pending Result as durably stored; from here on
// submit is a pure ErrAlreadySubmitted no-op.
func (a *Attempt) finishPersist() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = nil
	a.persisting = false
}

// abortPersist releases the persistence claim after a failed write so a
// later submit can retry it. Selections stay frozen either way.
func (a *Attempt) abortPersist() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.persisting = false
}
