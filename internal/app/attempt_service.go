package app

import (
	"context"
	"fmt"
	"time"

	"assessment-service/internal/domain"

	"github.com/google/uuid"
)

// resultWriteRetries bounds automatic retries of a failed result write
// before the failure is surfaced to the caller.
const resultWriteRetries = 3

// QuestionBank serves the padded question set for a section.
type QuestionBank interface {
	QuestionsForSection(ctx context.Context, sectionID string, count int) ([]domain.Question, error)
}

// SectionRepository is the registry of assessment sections.
type SectionRepository interface {
	List(ctx context.Context) ([]domain.Section, error)
	Get(ctx context.Context, id string) (domain.Section, error)
	Put(ctx context.Context, section domain.Section) error
	Delete(ctx context.Context, id string) error
}

// ResultRepository is the append-only store of submitted attempt results.
type ResultRepository interface {
	Append(ctx context.Context, result *domain.Result) error
	Query(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error)
}

// AttemptRepository tracks live attempts (in-memory, Redis-marked, etc).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(id string) (*Attempt, bool)
	Delete(id string)
}

// AttemptService contains the assessment use cases: starting an attempt,
// recording answers, and the guarded submit-and-persist transition.
type AttemptService struct {
	sections SectionRepository
	bank     QuestionBank
	attempts AttemptRepository
	results  ResultRepository
	now      func() time.Time
}

func NewAttemptService(sections SectionRepository, bank QuestionBank, attempts AttemptRepository, results ResultRepository) *AttemptService {
	return NewAttemptServiceWithClock(sections, bank, attempts, results, time.Now)
}

// NewAttemptServiceWithClock allows deterministic timestamps in tests.
func NewAttemptServiceWithClock(sections SectionRepository, bank QuestionBank, attempts AttemptRepository, results ResultRepository, now func() time.Time) *AttemptService {
	return &AttemptService{
		sections: sections,
		bank:     bank,
		attempts: attempts,
		results:  results,
		now:      now,
	}
}

// Start opens a new attempt for a user on a section: it validates the
// section, snapshots exactly domain.QuestionCount questions, and starts the
// attempt clock.
func (s *AttemptService) Start(ctx context.Context, sectionID, userID, userName string) (*Attempt, error) {
	section, err := s.sections.Get(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSectionUnavailable, err)
	}
	if !section.Active {
		return nil, domain.ErrSectionUnavailable
	}

	questions, err := s.bank.QuestionsForSection(ctx, sectionID, domain.QuestionCount)
	if err != nil {
		return nil, err
	}

	attempt := newAttempt(uuid.NewString(), userID, userName, sectionID, questions, domain.DurationSeconds, s.now())
	s.attempts.Put(attempt)
	return attempt, nil
}

// SelectAnswer records the chosen option for a question on a live attempt.
func (s *AttemptService) SelectAnswer(_ context.Context, attemptID string, questionIndex, optionIndex int) error {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.ErrAttemptNotFound
	}
	return attempt.selectAnswer(questionIndex, optionIndex)
}

// Remaining reports how many seconds are left on the attempt clock.
func (s *AttemptService) Remaining(attemptID string) (int, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return 0, domain.ErrAttemptNotFound
	}
	return attempt.remaining(s.now()), nil
}

// Submit drives the attempt through its terminal transition and persists the
// scored Result. The write is retried a bounded number of times; on
// persistent failure the attempt keeps the Result pending so a later Submit
// retries persistence instead of reporting ErrAlreadySubmitted.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (domain.Result, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.Result{}, domain.ErrAttemptNotFound
	}

	pending, err := attempt.claimSubmit(s.now())
	if err != nil {
		return domain.Result{}, err
	}

	var writeErr error
	for try := 0; try < resultWriteRetries; try++ {
		if writeErr = s.results.Append(ctx, pending); writeErr == nil {
			break
		}
	}
	if writeErr != nil {
		attempt.abortPersist()
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrResultWrite, writeErr)
	}

	result := *pending
	attempt.finishPersist()
	return result, nil
}

// Abandon drops a live attempt without recording a result; a user who
// navigates away simply leaves the attempt unresolved.
func (s *AttemptService) Abandon(attemptID string) {
	s.attempts.Delete(attemptID)
}

// Results reads back persisted results in insertion order.
func (s *AttemptService) Results(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error) {
	return s.results.Query(ctx, filter)
}

// Sections lists the section registry.
func (s *AttemptService) Sections(ctx context.Context) ([]domain.Section, error) {
	return s.sections.List(ctx)
}
