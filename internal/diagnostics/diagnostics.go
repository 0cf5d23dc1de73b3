package diagnostics

import (
	"context"

	"github.com/guttosm/optionform/internal/domain/models"
	"github.com/guttosm/optionform/internal/logger"
	"github.com/guttosm/optionform/internal/storage"
)

// Channel receives failed submissions. Implementations must not block the
// caller for long and must never surface anything to the result element.
type Channel interface {
	Record(ctx context.Context, f models.Failure)
}

// LogChannel writes each failure as a structured error log entry.
type LogChannel struct{}

func (LogChannel) Record(_ context.Context, f models.Failure) {
	logger.L().Error().
		Str("failure_id", f.ID).
		Str("submission_id", f.SubmissionID).
		Str("method", f.Method).
		Str("url", f.URL).
		Str("kind", string(f.Kind)).
		Time("occurred_at", f.OccurredAt).
		Msg(f.Message)
}

// JournalChannel persists failures through a FailureRepository.
// A storage error is logged and swallowed.
type JournalChannel struct {
	repo storage.FailureRepository
}

func NewJournalChannel(repo storage.FailureRepository) *JournalChannel {
	return &JournalChannel{repo: repo}
}

func (j *JournalChannel) Record(ctx context.Context, f models.Failure) {
	if err := j.repo.InsertFailure(ctx, f); err != nil {
		logger.L().Warn().
			Err(err).
			Str("failure_id", f.ID).
			Str("submission_id", f.SubmissionID).
			Msg("diagnostic journal write failed")
	}
}

// Multi fans a failure out to every channel, in order.
type Multi []Channel

func (m Multi) Record(ctx context.Context, f models.Failure) {
	for _, c := range m {
		if c != nil {
			c.Record(ctx, f)
		}
	}
}
