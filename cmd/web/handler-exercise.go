package main

import (
	"fmt"
	"net/http"

	"github.com/akoskinen/liftblock/internal/plan"
)

// exerciseSwapOptionsGET lists the variants an exercise can be swapped to.
func (app *application) exerciseSwapOptionsGET(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	d, _, err := app.planService.DaySchemes(r.Context(), week, day)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	if exercise < 0 || exercise >= len(d.Work) {
		app.clientError(w, r, http.StatusNotFound, fmt.Errorf("exercise index %d out of range", exercise))
		return
	}
	app.writeJSON(w, r, http.StatusOK, plan.SwapOptions(d.Work[exercise], d))
}

type swapRequest struct {
	Name string `json:"name"`
}

// exerciseSwapPOST replaces an exercise with one of its swap options.
func (app *application) exerciseSwapPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	var req swapRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.SwapExercise(r.Context(), week, day, exercise, req.Name); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addExerciseRequest struct {
	Name    string  `json:"name"`
	LiftKey string  `json:"liftKey"`
	Sets    int     `json:"sets"`
	Reps    int     `json:"reps"`
	Pct     float64 `json:"pct"`
}

// exerciseAddPOST appends an exercise to a day.
func (app *application) exerciseAddPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	var req addExerciseRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		app.clientError(w, r, http.StatusBadRequest, fmt.Errorf("exercise name is required"))
		return
	}
	ex := plan.Exercise{Name: req.Name, LiftKey: req.LiftKey, Sets: req.Sets, Reps: req.Reps, Pct: req.Pct}
	if err := app.planService.AddExercise(r.Context(), week, day, ex); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// exerciseDELETE removes an exercise from a day.
func (app *application) exerciseDELETE(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	if err := app.planService.RemoveExercise(r.Context(), week, day, exercise); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	To int `json:"to"`
}

// exerciseMovePOST reorders an exercise within a day.
func (app *application) exerciseMovePOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	var req moveRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.MoveExercise(r.Context(), week, day, exercise, req.To); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type workSetsRequest struct {
	WorkSets int `json:"workSets"`
}

// exerciseWorkSetsPOST overrides the working-set count for an exercise.
func (app *application) exerciseWorkSetsPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	var req workSetsRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.SetWorkSets(r.Context(), week, day, exercise, req.WorkSets); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type weightOffsetRequest struct {
	Offset float64 `json:"offset"`
}

// exerciseWeightOffsetPOST stores a manual weight offset for an exercise.
func (app *application) exerciseWeightOffsetPOST(w http.ResponseWriter, r *http.Request) {
	week, day, ok := app.dayParams(w, r)
	if !ok {
		return
	}
	exercise, ok := app.pathInt(w, r, "exercise")
	if !ok {
		return
	}
	var req weightOffsetRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.SetWeightOffset(r.Context(), week, day, exercise, req.Offset); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type accessoryWeightRequest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
}

// accessoryWeightPOST remembers the weight used for an accessory exercise.
func (app *application) accessoryWeightPOST(w http.ResponseWriter, r *http.Request) {
	var req accessoryWeightRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Exercise == "" {
		app.clientError(w, r, http.StatusBadRequest, fmt.Errorf("exercise name is required"))
		return
	}
	if err := app.planService.RememberAccessoryWeight(r.Context(), req.Exercise, req.Weight); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
