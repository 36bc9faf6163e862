package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/model"
	"github.com/jobsapi/jobs-api-go/internal/repository"
)

const (
	msgEmptyJobFields = "Company or Position field cannot be empty"
	msgJobRemoved     = "Job successfully removed"
)

// JobStore is the owner-scoped persistence the job flow needs.
type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	ListByOwner(ctx context.Context, owner string) ([]model.Job, error)
	GetByOwner(ctx context.Context, id, owner string) (*model.Job, error)
	UpdateByOwner(ctx context.Context, id, owner string, fn func(*model.Job) error) (*model.Job, error)
	DeleteByOwner(ctx context.Context, id, owner string) error
}

// JobService handles job CRUD on behalf of an authenticated owner.
type JobService struct {
	jobs JobStore
}

// NewJobService creates a new JobService.
func NewJobService(jobs JobStore) *JobService {
	return &JobService{jobs: jobs}
}

// List returns the owner's jobs, oldest first.
func (s *JobService) List(ctx context.Context, owner string) (model.JobListResponse, error) {
	jobs, err := s.jobs.ListByOwner(ctx, owner)
	if err != nil {
		return model.JobListResponse{}, s.internal(ctx, "listing jobs failed", err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return model.JobListResponse{Jobs: jobs, Count: len(jobs)}, nil
}

// Create stores a new job owned by owner.
func (s *JobService) Create(ctx context.Context, owner string, req model.CreateJobRequest) (model.Job, error) {
	job := model.Job{
		Company:   req.Company,
		Position:  req.Position,
		Status:    req.Status,
		CreatedBy: owner,
	}
	if job.Status == "" {
		job.Status = model.StatusPending
	}

	if err := job.Validate(); err != nil {
		return model.Job{}, validationError(err)
	}

	if err := s.jobs.Create(ctx, &job); err != nil {
		return model.Job{}, s.internal(ctx, "creating job failed", err)
	}

	return job, nil
}

// Get returns the owner's job with the given id. Jobs of other owners are
// reported as not found.
func (s *JobService) Get(ctx context.Context, owner, id string) (model.Job, error) {
	job, err := s.jobs.GetByOwner(ctx, id, owner)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.Job{}, jobNotFound(id)
		}
		return model.Job{}, s.internal(ctx, "getting job failed", err)
	}
	return *job, nil
}

// Update applies req to the owner's job and returns the stored result.
func (s *JobService) Update(ctx context.Context, owner, id string, req model.UpdateJobRequest) (model.Job, error) {
	if (req.Company != nil && *req.Company == "") || (req.Position != nil && *req.Position == "") {
		return model.Job{}, apperr.BadRequest(msgEmptyJobFields)
	}

	job, err := s.jobs.UpdateByOwner(ctx, id, owner, func(j *model.Job) error {
		req.Apply(j)
		if err := j.Validate(); err != nil {
			return validationError(err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperr.Error
		switch {
		case errors.Is(err, repository.ErrJobNotFound):
			return model.Job{}, jobNotFound(id)
		case errors.As(err, &appErr):
			return model.Job{}, err
		default:
			return model.Job{}, s.internal(ctx, "updating job failed", err)
		}
	}

	return *job, nil
}

// Delete removes the owner's job with the given id.
func (s *JobService) Delete(ctx context.Context, owner, id string) (model.MessageResponse, error) {
	if err := s.jobs.DeleteByOwner(ctx, id, owner); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.MessageResponse{}, jobNotFound(id)
		}
		return model.MessageResponse{}, s.internal(ctx, "deleting job failed", err)
	}
	return model.MessageResponse{Msg: msgJobRemoved}, nil
}

func (s *JobService) internal(ctx context.Context, msg string, err error) error {
	slog.ErrorContext(ctx, msg, "error", err)
	return apperr.Internal(err)
}

func jobNotFound(id string) error {
	return apperr.NotFound("No job with id " + id)
}
