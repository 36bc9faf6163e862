package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Job statuses.
const (
	StatusInterview = "interview"
	StatusDeclined  = "declined"
	StatusPending   = "pending"
)

const msgBadStatus = "Status should be one of interview, declined, pending"

// Job is a job application owned by the user in CreatedBy.
type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the user-editable fields of a job.
func (j Job) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.Company,
			validation.Required.Error("Please provide company name"),
			validation.RuneLength(0, 50).Error("Company should be at most 50 characters"),
		),
		validation.Field(&j.Position,
			validation.Required.Error("Please provide position"),
			validation.RuneLength(0, 100).Error("Position should be at most 100 characters"),
		),
		validation.Field(&j.Status,
			validation.Required.Error(msgBadStatus),
			validation.In(StatusInterview, StatusDeclined, StatusPending).Error(msgBadStatus),
		),
	)
}

// CreateJobRequest is the body of POST /jobs. Any owner supplied by the client
// is ignored.
type CreateJobRequest struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
}

// UpdateJobRequest is the body of PATCH /jobs/{id}. Nil fields are left unchanged.
type UpdateJobRequest struct {
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Status   *string `json:"status"`
}

// Apply copies the non-nil fields of r onto job.
func (r UpdateJobRequest) Apply(job *Job) {
	if r.Company != nil {
		job.Company = *r.Company
	}
	if r.Position != nil {
		job.Position = *r.Position
	}
	if r.Status != nil {
		job.Status = *r.Status
	}
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job Job `json:"job"`
}

// JobListResponse is the body of GET /jobs.
type JobListResponse struct {
	Jobs  []Job `json:"jobs"`
	Count int   `json:"count"`
}

// MessageResponse carries a plain message, used for acknowledgements and errors.
type MessageResponse struct {
	Msg string `json:"msg"`
}
