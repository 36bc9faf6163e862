// Package memory provides in-process implementations of the user and job
// repositories. Data lives only as long as the process; it is meant for local
// runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jobsapi/jobs-api-go/internal/model"
	"github.com/jobsapi/jobs-api-go/internal/repository"
)

// UserRepository stores users in a map keyed by ID.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

// Delete removes a user. Only the in-memory store supports it.
func (r *UserRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// JobRepository stores jobs in a map keyed by ID.
type JobRepository struct {
	mu   sync.Mutex
	jobs map[string]storedJob
	seq  int64
}

// storedJob pairs a job with its insertion sequence, which breaks ties
// between jobs created in the same instant.
type storedJob struct {
	job model.Job
	seq int64
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]storedJob)}
}

func (r *JobRepository) Create(_ context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	job.UpdatedAt = job.CreatedAt
	r.jobs[job.ID] = storedJob{job: *job, seq: r.seq}
	return nil
}

func (r *JobRepository) ListByOwner(_ context.Context, owner string) ([]model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []storedJob
	for _, sj := range r.jobs {
		if sj.job.CreatedBy == owner {
			owned = append(owned, sj)
		}
	}
	sort.Slice(owned, func(a, b int) bool {
		if !owned[a].job.CreatedAt.Equal(owned[b].job.CreatedAt) {
			return owned[a].job.CreatedAt.Before(owned[b].job.CreatedAt)
		}
		return owned[a].seq < owned[b].seq
	})

	jobs := make([]model.Job, 0, len(owned))
	for _, sj := range owned {
		jobs = append(jobs, sj.job)
	}
	return jobs, nil
}

func (r *JobRepository) GetByOwner(_ context.Context, id, owner string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sj, ok := r.jobs[id]
	if !ok || sj.job.CreatedBy != owner {
		return nil, repository.ErrJobNotFound
	}
	return &sj.job, nil
}

func (r *JobRepository) UpdateByOwner(_ context.Context, id, owner string, fn func(*model.Job) error) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sj, ok := r.jobs[id]
	if !ok || sj.job.CreatedBy != owner {
		return nil, repository.ErrJobNotFound
	}
	j := sj.job
	if err := fn(&j); err != nil {
		return nil, err
	}
	j.ID = id
	j.CreatedBy = owner
	j.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	r.jobs[id] = storedJob{job: j, seq: sj.seq}
	return &j, nil
}

func (r *JobRepository) DeleteByOwner(_ context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sj, ok := r.jobs[id]
	if !ok || sj.job.CreatedBy != owner {
		return repository.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}
