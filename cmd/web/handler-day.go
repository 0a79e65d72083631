package main

import (
	"net/http"

	"github.com/akoskinen/liftblock/internal/plan"
)

const lastWorkoutSessionKey = "lastWorkout"

type dayResponse struct {
	Day     plan.Day         `json:"day"`
	Schemes [][]plan.SetSpec `json:"schemes"`
}

// dayGET returns a day with its fully resolved set schemes and remembers it
// as the session's last viewed workout.
func (app *application) dayGET(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	d, schemes, err := app.planService.DaySchemes(r.Context(), week, day)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), lastWorkoutSessionKey, r.URL.Path)
	app.writeJSON(w, r, http.StatusOK, dayResponse{Day: d, Schemes: schemes})
}

// resumeGET points the client at the workout it last viewed in this session.
func (app *application) resumeGET(w http.ResponseWriter, r *http.Request) {
	path := app.sessionManager.GetString(r.Context(), lastWorkoutSessionKey)
	if path == "" {
		app.clientError(w, r, http.StatusNotFound, plan.ErrNotFound)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"path": path})
}

// daySetPOST logs one performed set.
func (app *application) daySetPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	set, ok := app.pathInt(w, r, "set")
	if !ok {
		return
	}

	var rec plan.SetRecord
	if err := readJSON(r, &rec); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.LogSet(r.Context(), week, day, exercise, set, rec); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dayCompletePOST finalizes a training day.
func (app *application) dayCompletePOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	if err := app.planService.CompleteDay(r.Context(), week, day); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type readinessRequest struct {
	Score float64 `json:"score"`
}

// dayReadinessPOST records a pre-session readiness score and rescales the day.
func (app *application) dayReadinessPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	var req readinessRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.LogReadiness(r.Context(), week, day, req.Score); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
