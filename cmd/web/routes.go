package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				app.timeout(next)))))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next)))))))
		}
	)

	mux.Handle("GET /api/state", session(http.HandlerFunc(app.stateGET)))
	mux.Handle("POST /api/profiles", session(http.HandlerFunc(app.profilePOST)))
	mux.Handle("POST /api/profiles/{name}/switch", session(http.HandlerFunc(app.profileSwitchPOST)))

	mux.Handle("GET /api/block", session(http.HandlerFunc(app.blockGET)))
	mux.Handle("POST /api/block/generate", session(http.HandlerFunc(app.blockGeneratePOST)))
	mux.Handle("GET /api/block/export", session(http.HandlerFunc(app.blockExportGET)))
	mux.Handle("POST /api/block/import", session(http.HandlerFunc(app.blockImportPOST)))

	mux.Handle("GET /api/weeks/{week}/days/{day}", session(http.HandlerFunc(app.dayGET)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/complete", session(http.HandlerFunc(app.dayCompletePOST)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/readiness", session(http.HandlerFunc(app.dayReadinessPOST)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises/{exercise}/sets/{set}",
		session(http.HandlerFunc(app.daySetPOST)))

	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises",
		session(http.HandlerFunc(app.exerciseAddPOST)))
	mux.Handle("DELETE /api/weeks/{week}/days/{day}/exercises/{exercise}",
		session(http.HandlerFunc(app.exerciseDELETE)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises/{exercise}/move",
		session(http.HandlerFunc(app.exerciseMovePOST)))
	mux.Handle("GET /api/weeks/{week}/days/{day}/exercises/{exercise}/swap-options",
		session(http.HandlerFunc(app.exerciseSwapOptionsGET)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises/{exercise}/swap",
		session(http.HandlerFunc(app.exerciseSwapPOST)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises/{exercise}/work-sets",
		session(http.HandlerFunc(app.exerciseWorkSetsPOST)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/exercises/{exercise}/weight-offset",
		session(http.HandlerFunc(app.exerciseWeightOffsetPOST)))
	mux.Handle("POST /api/accessory-weights", session(http.HandlerFunc(app.accessoryWeightPOST)))

	mux.Handle("GET /api/resume", session(http.HandlerFunc(app.resumeGET)))

	mux.Handle("POST /api/sync/push", session(http.HandlerFunc(app.syncPushPOST)))
	mux.Handle("POST /api/sync/pull", session(http.HandlerFunc(app.syncPullPOST)))

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	return mux
}
