package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AbaSheger/eventflow/internal/domain/order"
	"github.com/AbaSheger/eventflow/internal/usecase"
)

// Problem is the structured error body returned for every failed
// request: a machine-readable type, an HTTP status and a human detail.
// Validation problems additionally enumerate each violated field.
type Problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func writeProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

// writeError maps domain errors onto problem responses. Delivery
// failures never reach this path; they are contained in the consumer.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		writeProblem(w, Problem{
			Type:   "/errors/validation",
			Title:  "Validation failed",
			Status: http.StatusBadRequest,
			Errors: validationErr.Fields,
		})
		return
	}

	if errors.Is(err, order.ErrNotFound) {
		writeProblem(w, Problem{
			Type:   "/errors/order-not-found",
			Title:  "Order not found",
			Status: http.StatusNotFound,
			Detail: err.Error(),
		})
		return
	}

	var conflictErr *order.ConflictError
	if errors.As(err, &conflictErr) {
		writeProblem(w, Problem{
			Type:   "/errors/conflict",
			Title:  "Conflict",
			Status: http.StatusConflict,
			Detail: conflictErr.Error(),
		})
		return
	}

	slog.Error("unhandled error", "error", err)
	writeProblem(w, Problem{
		Type:   "/errors/internal",
		Title:  "Internal server error",
		Status: http.StatusInternalServerError,
		Detail: "An unexpected error occurred",
	})
}
