package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/strideworks/storefront/internal/store"
)

// validationError rejects a request before its handler runs.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// validator is implemented by every procedure input.
type validator interface {
	Validate() error
}

type errorBody struct {
	Error string `json:"error"`
}

// procedure wraps a typed handler into an http.HandlerFunc: decode the
// JSON body, validate, call, encode. An empty body decodes into the
// input's zero value so no-argument procedures accept bare POSTs.
func procedure[In validator, Out any](fn func(ctx context.Context, in In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, invalid("failed to read request body"))
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &in); err != nil {
				writeError(w, r, invalid("invalid JSON body"))
				return
			}
		}
		if err := in.Validate(); err != nil {
			writeError(w, r, err)
			return
		}

		out, err := fn(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	var ve *validationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case store.IsNotFound(err):
		status = http.StatusNotFound
	case store.IsConflict(err):
		status = http.StatusConflict
	default:
		log.WithFields(log.Fields{
			"requestId": requestID(r.Context()),
			"url":       r.URL.Path,
		}).WithError(err).Error("request failed")
		msg = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: msg})
}
