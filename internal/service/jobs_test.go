package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/model"
	"github.com/jobsapi/jobs-api-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "11111111-1111-4111-8111-111111111111"
	bob   = "22222222-2222-4222-8222-222222222222"
)

func strPtr(s string) *string { return &s }

func newTestJobService() *JobService {
	return NewJobService(memory.NewJobRepository())
}

func TestCreateThenGet(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, alice, created.CreatedBy)

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_ValidationError(t *testing.T) {
	svc := newTestJobService()

	_, err := svc.Create(context.Background(), alice, model.CreateJobRequest{Position: "Eng", Status: "hired"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Please provide company name, Status should be one of interview, declined, pending", apperr.Message(err))
}

func TestList_OwnedJobsInCreationOrder(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	first, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Globex", Position: "Ops", Status: model.StatusInterview})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, model.CreateJobRequest{Company: "Initech", Position: "QA"})
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, first.ID, list.Jobs[0].ID)
	assert.Equal(t, second.ID, list.Jobs[1].ID)

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Jobs)
}

func TestOtherOwnerSeesNotFound(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, job.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Update(ctx, bob, job.ID, model.UpdateJobRequest{Status: strPtr(model.StatusDeclined)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Delete(ctx, bob, job.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	got, err := svc.Get(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdate(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, job.ID, model.UpdateJobRequest{
		Position: strPtr("Senior Eng"),
		Status:   strPtr(model.StatusInterview),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Senior Eng", updated.Position)
	assert.Equal(t, model.StatusInterview, updated.Status)
	assert.Equal(t, alice, updated.CreatedBy)

	got, err := svc.Get(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_EmptyFieldsRejected(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	for _, req := range []model.UpdateJobRequest{
		{Company: strPtr("")},
		{Position: strPtr("")},
	} {
		_, err := svc.Update(ctx, alice, job.ID, req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.Equal(t, msgEmptyJobFields, apperr.Message(err))
	}

	got, err := svc.Get(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}

func TestUpdate_RerunsValidators(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, job.ID, model.UpdateJobRequest{Status: strPtr("hired")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := svc.Get(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdate_EmptyStatusRejected(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng", Status: model.StatusInterview})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, job.ID, model.UpdateJobRequest{Status: strPtr("")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Status should be one of interview, declined, pending", apperr.Message(err))

	got, err := svc.Get(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInterview, got.Status)
}

func TestDelete_NotIdempotent(t *testing.T) {
	svc := newTestJobService()
	ctx := context.Background()

	job, err := svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, msgJobRemoved, resp.Msg)

	_, err = svc.Delete(ctx, alice, job.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "No job with id "+job.ID, apperr.Message(err))

	_, err = svc.Get(ctx, alice, job.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

type failingJobs struct{ err error }

func (f failingJobs) Create(context.Context, *model.Job) error { return f.err }
func (f failingJobs) ListByOwner(context.Context, string) ([]model.Job, error) {
	return nil, f.err
}
func (f failingJobs) GetByOwner(context.Context, string, string) (*model.Job, error) {
	return nil, f.err
}
func (f failingJobs) UpdateByOwner(context.Context, string, string, func(*model.Job) error) (*model.Job, error) {
	return nil, f.err
}
func (f failingJobs) DeleteByOwner(context.Context, string, string) error { return f.err }

func TestJobs_StorageFailuresAreInternal(t *testing.T) {
	svc := NewJobService(failingJobs{err: errors.New("Error 2006: MySQL server has gone away")})
	ctx := context.Background()

	_, err := svc.List(ctx, alice)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = svc.Create(ctx, alice, model.CreateJobRequest{Company: "Acme", Position: "Eng"})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = svc.Get(ctx, alice, "j1")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = svc.Update(ctx, alice, "j1", model.UpdateJobRequest{Status: strPtr(model.StatusDeclined)})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = svc.Delete(ctx, alice, "j1")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, apperr.GenericMessage, apperr.Message(err))
}
