package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobsapi/jobs-api-go/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, company, position, status, created_by, created_at, updated_at`

// JobRepository handles job persistence. Every read and write is scoped to
// the owning user.
type JobRepository struct {
	db  *DB
	now func() time.Time
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db, now: now}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner, job *model.Job) error {
	return row.Scan(
		&job.ID, &job.Company, &job.Position, &job.Status,
		&job.CreatedBy, &job.CreatedAt, &job.UpdatedAt,
	)
}

// Create inserts job, assigning its ID and timestamps.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	job.ID = uuid.NewString()
	job.CreatedAt = r.now()
	job.UpdatedAt = job.CreatedAt

	query := r.db.Dialect.Rebind(`INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Company, job.Position, job.Status,
		job.CreatedBy, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

// ListByOwner returns all jobs created by owner, oldest first.
func (r *JobRepository) ListByOwner(ctx context.Context, owner string) ([]model.Job, error) {
	query := r.db.Dialect.Rebind(`SELECT ` + jobColumns + ` FROM jobs
		WHERE created_by = ? ORDER BY created_at ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// GetByOwner retrieves the job with the given id if it belongs to owner.
func (r *JobRepository) GetByOwner(ctx context.Context, id, owner string) (*model.Job, error) {
	query := r.db.Dialect.Rebind(`SELECT ` + jobColumns + ` FROM jobs WHERE id = ? AND created_by = ?`)

	job := &model.Job{}
	if err := scanJob(r.db.QueryRowContext(ctx, query, id, owner), job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

// UpdateByOwner locks the owner's job, lets fn modify it, and writes the
// result back in one transaction. If fn returns an error nothing is written.
// The returned job is the stored post-update document.
func (r *JobRepository) UpdateByOwner(ctx context.Context, id, owner string, fn func(*model.Job) error) (*model.Job, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	selectQuery := r.db.Dialect.Rebind(`SELECT ` + jobColumns + ` FROM jobs
		WHERE id = ? AND created_by = ? FOR UPDATE`)

	job := &model.Job{}
	if err := scanJob(tx.QueryRowContext(ctx, selectQuery, id, owner), job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if err := fn(job); err != nil {
		return nil, err
	}

	// Identity and ownership are not editable.
	job.ID = id
	job.CreatedBy = owner
	job.UpdatedAt = r.now()

	updateQuery := r.db.Dialect.Rebind(`UPDATE jobs SET company = ?, position = ?, status = ?, updated_at = ?
		WHERE id = ? AND created_by = ?`)

	if _, err := tx.ExecContext(ctx, updateQuery,
		job.Company, job.Position, job.Status, job.UpdatedAt, id, owner,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteByOwner removes the owner's job with the given id.
func (r *JobRepository) DeleteByOwner(ctx context.Context, id, owner string) error {
	query := r.db.Dialect.Rebind(`DELETE FROM jobs WHERE id = ? AND created_by = ?`)

	result, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}
