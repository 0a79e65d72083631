package main

import (
	"net/http"

	"github.com/akoskinen/liftblock/internal/plan"
)

// stateGET returns the whole state document.
func (app *application) stateGET(w http.ResponseWriter, r *http.Request) {
	st, err := app.planService.State(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, st)
}

// profilePOST creates or replaces a profile.
func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	var p plan.Profile
	if err := readJSON(r, &p); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := app.planService.SaveProfile(r.Context(), &p); err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, p)
}

// profileSwitchPOST makes the named profile active.
func (app *application) profileSwitchPOST(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := app.planService.SwitchProfile(r.Context(), name); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
