package apiv1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julienmatondotezolo/ada-stock/internal/http/middleware"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// Response is the envelope every /api/v1 route answers with.
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data"`
	Message string              `json:"message,omitempty"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	if err := writeJSON(w, status, Response{Success: true, Data: data, Message: message}); err != nil {
		slog.Error("could not write response", "error", err)
	}
}

func fail(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, Response{Success: false, Message: message}); err != nil {
		slog.Error("could not write response", "error", err)
	}
}

func failValidation(w http.ResponseWriter, errs []models.FieldError) {
	if err := writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "validation failed", Errors: errs}); err != nil {
		slog.Error("could not write response", "error", err)
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	fail(w, http.StatusUnauthorized, msg)
}

func tooManyRequests(w http.ResponseWriter) {
	fail(w, http.StatusTooManyRequests, "too many requests")
}

// performer prefers the name given in the request, then the token subject.
func performer(r *http.Request, given string) string {
	if given != "" {
		return given
	}
	return middleware.Subject(r)
}

func queryBool(r *http.Request, name string) (*bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &v, nil
}

func queryInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

// pagination parses limit and offset; limit must be positive and offset non-negative.
func pagination(r *http.Request) (limit, offset *int, err error) {
	limit, err = queryInt(r, "limit")
	if err != nil {
		return nil, nil, err
	}
	if limit != nil && *limit <= 0 {
		return nil, nil, errors.New("limit must be greater than zero")
	}

	offset, err = queryInt(r, "offset")
	if err != nil {
		return nil, nil, err
	}
	if offset != nil && *offset < 0 {
		return nil, nil, errors.New("offset must be zero or positive")
	}
	return limit, offset, nil
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// queryTime parses an RFC3339 query value. A '+' offset decoded as a space is restored.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format", name)
	}
	return &ts, nil
}
