package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/akoskinen/liftblock/internal/csvio"
	"github.com/akoskinen/liftblock/internal/plan"
)

// blockGeneratePOST generates a new training block for the active profile.
func (app *application) blockGeneratePOST(w http.ResponseWriter, r *http.Request) {
	block, err := app.planService.GenerateBlock(r.Context())
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, block)
}

// blockGET returns the current training block.
func (app *application) blockGET(w http.ResponseWriter, r *http.Request) {
	st, err := app.planService.State(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if st.CurrentBlock == nil {
		app.clientError(w, r, http.StatusNotFound, plan.ErrNotFound)
		return
	}
	app.writeJSON(w, r, http.StatusOK, st.CurrentBlock)
}

// blockExportGET downloads the current block as CSV.
func (app *application) blockExportGET(w http.ResponseWriter, r *http.Request) {
	st, err := app.planService.State(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if st.CurrentBlock == nil {
		app.clientError(w, r, http.StatusNotFound, plan.ErrNotFound)
		return
	}

	filename := fmt.Sprintf("liftblock_%s_%s.csv", st.CurrentBlock.ProgramType, st.CurrentBlock.StartDate)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := csvio.ExportBlock(w, st.CurrentBlock); err != nil {
		app.serverError(w, r, err)
	}
}

// blockImportPOST replaces the current block with an uploaded CSV backup.
// The block parses fully before any state changes.
func (app *application) blockImportPOST(w http.ResponseWriter, r *http.Request) {
	block, err := csvio.ImportBlock(http.MaxBytesReader(w, r.Body, 1<<20), time.Now())
	if err != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if err := app.planService.ImportBlock(r.Context(), block); err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, block)
}
