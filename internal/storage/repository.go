package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/optionform/internal/domain/models"
)

// FailureRepository defines contract for the diagnostic journal.
type FailureRepository interface {
	InsertFailure(ctx context.Context, f models.Failure) error
	RecentFailures(ctx context.Context, limit int) ([]models.Failure, error)
}

type failureRepository struct {
	db *sql.DB
}

func NewFailureRepository(db *sql.DB) FailureRepository {
	return &failureRepository{db: db}
}

// InsertFailure appends one failed submission to submission_failures.
func (r *failureRepository) InsertFailure(ctx context.Context, f models.Failure) error {
	occurred := f.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submission_failures (id, submission_id, method, url, kind, message, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, f.ID, f.SubmissionID, f.Method, f.URL, string(f.Kind), f.Message, occurred)
	return err
}

// RecentFailures returns up to limit entries, newest first.
func (r *failureRepository) RecentFailures(ctx context.Context, limit int) ([]models.Failure, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, submission_id, method, url, kind, message, occurred_at
		FROM submission_failures
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Failure
	for rows.Next() {
		var (
			f    models.Failure
			kind string
		)
		if err := rows.Scan(&f.ID, &f.SubmissionID, &f.Method, &f.URL, &kind, &f.Message, &f.OccurredAt); err != nil {
			return nil, err
		}
		f.Kind = models.FailureKind(kind)
		out = append(out, f)
	}
	return out, rows.Err()
}
