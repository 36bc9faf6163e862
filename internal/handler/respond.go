package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/model"
)

const maxBodyBytes = 1 << 20 // 1MB

var errBodyTooLarge = errors.New("request body too large")

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &tooLarge):
			return errBodyTooLarge
		default:
			return apperr.BadRequest("Invalid request body")
		}
	}
	return nil
}

// writeDecodeError answers a failed decodeJSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.MessageResponse{Msg: err.Error()})
		return
	}
	writeError(w, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the single place errors become responses. Only apperr
// messages reach the client; everything else is a generic 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.StatusCode(err), model.MessageResponse{Msg: apperr.Message(err)})
}
