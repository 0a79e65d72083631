package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/akoskinen/liftblock/internal/cloudsync"
)

// syncPushPOST backs the state document up to the cloud immediately.
func (app *application) syncPushPOST(w http.ResponseWriter, r *http.Request) {
	if !app.syncClient.Configured() {
		app.clientError(w, r, http.StatusConflict, fmt.Errorf("cloud sync is not configured"))
		return
	}
	st, err := app.planService.State(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	// Persist a freshly minted sync identity so later pushes reuse it.
	if st.SyncUserID == "" {
		cloudsync.ProfileID(st)
		if err := app.planService.ReplaceState(r.Context(), st); err != nil {
			app.serverError(w, r, err)
			return
		}
	}
	if err := app.syncClient.Push(r.Context(), st); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"profileId": st.SyncUserID})
}

type syncPullRequest struct {
	ProfileID string `json:"profileId"`
}

// syncPullPOST replaces local state with the cloud copy. Destructive, so the
// client must name the sync identity explicitly.
func (app *application) syncPullPOST(w http.ResponseWriter, r *http.Request) {
	if !app.syncClient.Configured() {
		app.clientError(w, r, http.StatusConflict, fmt.Errorf("cloud sync is not configured"))
		return
	}
	var req syncPullRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.ProfileID == "" {
		app.clientError(w, r, http.StatusBadRequest, fmt.Errorf("profileId is required"))
		return
	}
	st, err := app.syncClient.Pull(r.Context(), req.ProfileID)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	if err := app.planService.ReplaceState(r.Context(), st); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, st)
}

// periodicSync pushes the state document to the cloud on an interval until
// the context is cancelled. It does nothing when sync is not configured.
func (app *application) periodicSync(ctx context.Context, interval time.Duration) {
	if !app.syncClient.Configured() || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := app.planService.State(ctx)
			if err != nil {
				app.logger.LogAttrs(ctx, slog.LevelWarn, "periodic sync: load state", slog.Any("error", err))
				continue
			}
			// Persist a freshly minted sync identity before the push so
			// every tick addresses the same cloud row.
			if st.SyncUserID == "" {
				cloudsync.ProfileID(st)
				if err := app.planService.ReplaceState(ctx, st); err != nil {
					app.logger.LogAttrs(ctx, slog.LevelWarn, "periodic sync: save identity", slog.Any("error", err))
					continue
				}
			}
			if err := app.syncClient.Push(ctx, st); err != nil {
				app.logger.LogAttrs(ctx, slog.LevelWarn, "periodic sync: push", slog.Any("error", err))
			}
		}
	}
}
