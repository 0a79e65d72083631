package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akoskinen/liftblock/internal/cloudsync"
	"github.com/akoskinen/liftblock/internal/plan"
	"github.com/akoskinen/liftblock/internal/sqlite"
	"github.com/akoskinen/liftblock/internal/testhelpers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	syncClient := cloudsync.New("", "", logger)
	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		planService:    plan.NewService(db, logger, syncClient),
		syncClient:     syncClient,
	}
	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("close response body: %v", err)
		}
	})
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAPI_healthy(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/healthy", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAPI_generateBlockRequiresMaxes(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	// The default profile has no tested maxes, so generation must fail.
	resp := do(t, srv, http.MethodPost, "/api/block/generate", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func saveProfileBody(name string) string {
	return fmt.Sprintf(`{
		"name": %q,
		"units": "kg",
		"maxes": {"snatch": 100, "cj": 120, "fs": 140, "bs": 160}
	}`, name)
}

func TestAPI_blockLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/profiles", saveProfileBody("Default"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save profile status = %d, want 200", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/api/block/generate", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, want 201", resp.StatusCode)
	}
	var block plan.Block
	decode(t, resp, &block)
	if len(block.Weeks) == 0 {
		t.Fatal("generated block has no weeks")
	}

	resp = do(t, srv, http.MethodGet, "/api/weeks/0/days/0", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("day status = %d, want 200", resp.StatusCode)
	}
	var day dayResponse
	decode(t, resp, &day)
	if len(day.Day.Work) == 0 || len(day.Schemes) != len(day.Day.Work) {
		t.Fatalf("day has %d exercises and %d schemes", len(day.Day.Work), len(day.Schemes))
	}

	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/exercises/0/sets/0",
		`{"weight": 60, "reps": 2, "action": "make"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("log set status = %d, want 204", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/complete", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("complete status = %d, want 204", resp.StatusCode)
	}

	// Completing the same day twice is rejected.
	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/complete", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("second complete status = %d, want 422", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodGet, "/api/block/export", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/csv" {
		t.Errorf("export content type = %q, want text/csv", got)
	}
}

func TestAPI_swapOptions(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/profiles", saveProfileBody("Default"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save profile status = %d, want 200", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodPost, "/api/block/generate", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, want 201", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodGet, "/api/weeks/0/days/0/exercises/0/swap-options", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("swap options status = %d, want 200", resp.StatusCode)
	}
	var options []plan.Variant
	decode(t, resp, &options)
	if len(options) == 0 {
		t.Fatal("no swap options returned")
	}

	body := fmt.Sprintf(`{"name": %q}`, options[0].Name)
	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/exercises/0/swap", body)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("swap status = %d, want 204", resp.StatusCode)
	}
}

func TestAPI_exerciseEdits(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/profiles", saveProfileBody("Default"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save profile status = %d, want 200", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodPost, "/api/block/generate", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, want 201", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodGet, "/api/weeks/0/days/0", "")
	var before dayResponse
	decode(t, resp, &before)
	n := len(before.Day.Work)

	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/exercises",
		`{"name": "Bench Press", "sets": 3, "reps": 8}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", resp.StatusCode)
	}

	body := fmt.Sprintf(`{"to": %d}`, 0)
	resp = do(t, srv, http.MethodPost, fmt.Sprintf("/api/weeks/0/days/0/exercises/%d/move", n), body)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("move status = %d, want 204", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodGet, "/api/weeks/0/days/0", "")
	var after dayResponse
	decode(t, resp, &after)
	if len(after.Day.Work) != n+1 {
		t.Fatalf("day has %d exercises after add, want %d", len(after.Day.Work), n+1)
	}
	if after.Day.Work[0].Name != "Bench Press" {
		t.Errorf("first exercise = %q, want the moved Bench Press", after.Day.Work[0].Name)
	}

	resp = do(t, srv, http.MethodDelete, "/api/weeks/0/days/0/exercises/0", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, "/api/weeks/0/days/0", "")
	var final dayResponse
	decode(t, resp, &final)
	if len(final.Day.Work) != n {
		t.Errorf("day has %d exercises after delete, want %d", len(final.Day.Work), n)
	}

	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/exercises", `{"sets": 3}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("nameless add status = %d, want 400", resp.StatusCode)
	}
}

func TestPeriodicSync_keepsOneIdentity(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	var (
		mu  sync.Mutex
		ids []string
	)
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var row struct {
			ProfileID string `json:"profile_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&row); err == nil {
			mu.Lock()
			ids = append(ids, row.ProfileID)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(stub.Close)

	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	syncClient := cloudsync.New(stub.URL, "anon-key", logger)
	app := application{
		logger:      logger,
		planService: plan.NewService(db, logger, syncClient),
		syncClient:  syncClient,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.periodicSync(ctx, 5*time.Millisecond)
	}()

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(ids)
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d pushes before deadline", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("pushes used different identities: %q and %q", ids[0], id)
		}
	}
	st, err := app.planService.State(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.SyncUserID != ids[0] {
		t.Errorf("persisted identity %q, pushes used %q", st.SyncUserID, ids[0])
	}
}

func TestAPI_readinessOutOfRange(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/profiles", saveProfileBody("Default"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save profile status = %d, want 200", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodPost, "/api/block/generate", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, want 201", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/api/weeks/0/days/0/readiness", `{"score": 9}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("readiness status = %d, want 422", resp.StatusCode)
	}
}
