package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantMsg string
	}{
		{"valid", RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "secret1"}, ""},
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "secret1"}, "Please provide name"},
		{"short name", RegisterRequest{Name: "Al", Email: "a@b.com", Password: "secret1"}, "Name should be at least 3 characters"},
		{"long name", RegisterRequest{Name: strings.Repeat("x", 51), Email: "a@b.com", Password: "secret1"}, "Name should be at most 50 characters"},
		{"missing email", RegisterRequest{Name: "Alice", Password: "secret1"}, "Please provide an email"},
		{"bad email", RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"}, "Please enter a valid email"},
		{"missing password", RegisterRequest{Name: "Alice", Email: "a@b.com"}, "Please provide a password"},
		{"short password", RegisterRequest{Name: "Alice", Email: "a@b.com", Password: "12345"}, "Password should be at least 6 characters"},
		{"password at bcrypt limit", RegisterRequest{Name: "Alice", Email: "a@b.com", Password: strings.Repeat("p", 72)}, ""},
		{"password over bcrypt limit", RegisterRequest{Name: "Alice", Email: "a@b.com", Password: strings.Repeat("p", 73)}, "Password should be at most 72 bytes"},
		{"multibyte password over bcrypt limit", RegisterRequest{Name: "Alice", Email: "a@b.com", Password: strings.Repeat("é", 40)}, "Password should be at most 72 bytes"},
		{"two character multibyte name", RegisterRequest{Name: "李明", Email: "a@b.com", Password: "secret1"}, "Name should be at least 3 characters"},
		{"three character multibyte name", RegisterRequest{Name: "李小明", Email: "a@b.com", Password: "secret1"}, ""},
		{"fifty multibyte characters", RegisterRequest{Name: strings.Repeat("é", 50), Email: "a@b.com", Password: "secret1"}, ""},
		{"fifty one multibyte characters", RegisterRequest{Name: strings.Repeat("é", 51), Email: "a@b.com", Password: "secret1"}, "Name should be at most 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			msg, ok := ValidationMessage(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidationMessageJoinsFieldsInOrder(t *testing.T) {
	err := RegisterRequest{}.Validate()

	msg, ok := ValidationMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Please provide an email, Please provide name, Please provide a password", msg)
}

func TestValidationMessageIgnoresOtherErrors(t *testing.T) {
	_, ok := ValidationMessage(errors.New("boom"))
	assert.False(t, ok)

	_, ok = ValidationMessage(nil)
	assert.False(t, ok)
}

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantMsg string
	}{
		{"valid", Job{Company: "Acme", Position: "Eng", Status: StatusPending}, ""},
		{"empty status", Job{Company: "Acme", Position: "Eng"}, "Status should be one of interview, declined, pending"},
		{"missing company", Job{Position: "Eng", Status: StatusPending}, "Please provide company name"},
		{"missing position", Job{Company: "Acme", Status: StatusPending}, "Please provide position"},
		{"long company", Job{Company: strings.Repeat("c", 51), Position: "Eng", Status: StatusPending}, "Company should be at most 50 characters"},
		{"long position", Job{Company: "Acme", Position: strings.Repeat("p", 101), Status: StatusPending}, "Position should be at most 100 characters"},
		{"multibyte company", Job{Company: strings.Repeat("ü", 50), Position: "Eng", Status: StatusPending}, ""},
		{"multibyte position", Job{Company: "Acme", Position: strings.Repeat("日", 100), Status: StatusPending}, ""},
		{"long multibyte position", Job{Company: "Acme", Position: strings.Repeat("日", 101), Status: StatusPending}, "Position should be at most 100 characters"},
		{"bad status", Job{Company: "Acme", Position: "Eng", Status: "hired"}, "Status should be one of interview, declined, pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			msg, ok := ValidationMessage(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestUpdateJobRequestApply(t *testing.T) {
	company := "Globex"
	status := StatusInterview
	job := Job{Company: "Acme", Position: "Eng", Status: StatusPending, CreatedBy: "owner"}

	UpdateJobRequest{Company: &company, Status: &status}.Apply(&job)

	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "Eng", job.Position)
	assert.Equal(t, StatusInterview, job.Status)
	assert.Equal(t, "owner", job.CreatedBy)
}
