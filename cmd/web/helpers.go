package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/akoskinen/liftblock/internal/errors"
	"github.com/akoskinen/liftblock/internal/plan"
)

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", slog.Any("error", err))
	}
}

// readJSON decodes the request body into v, rejecting unknown fields so
// client typos surface as errors instead of silently dropped settings.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, err error) {
	app.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// respondError maps service errors to status codes: unknown resources give
// 404, everything else from user input gives 422.
func (app *application) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, plan.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, err)
	case errors.Is(err, plan.ErrInvalidProfile):
		app.clientError(w, r, http.StatusUnprocessableEntity, err)
	case strings.Contains(err.Error(), "out of range") || strings.Contains(err.Error(), "already completed"):
		app.clientError(w, r, http.StatusUnprocessableEntity, err)
	default:
		app.serverError(w, r, err)
	}
}

// pathInt parses an integer path parameter. On failure, it sends HTTP 404
// and reports false.
func (app *application) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return v, true
}

// dayParams parses the week and day path parameters common to session routes.
func (app *application) dayParams(w http.ResponseWriter, r *http.Request) (week, day int, ok bool) {
	if week, ok = app.pathInt(w, r, "week"); !ok {
		return 0, 0, false
	}
	if day, ok = app.pathInt(w, r, "day"); !ok {
		return 0, 0, false
	}
	return week, day, true
}
