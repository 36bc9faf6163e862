package model

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationMessage flattens ozzo validation errors into a single
// client-facing message, ordered by field name. It returns false if err is not
// a validation failure.
func ValidationMessage(err error) (string, bool) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return "", false
	}

	fields := make([]string, 0, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, errs[field].Error())
	}
	return strings.Join(msgs, ", "), true
}
