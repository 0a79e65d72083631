package cloudsync_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akoskinen/liftblock/internal/cloudsync"
	"github.com/akoskinen/liftblock/internal/plan"
	"github.com/akoskinen/liftblock/internal/testhelpers"
)

func TestClient_pushAndPull(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	var stored map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") == "" || r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodPost:
			if got := r.Header.Get("Prefer"); got != "resolution=merge-duplicates" {
				t.Errorf("Prefer header = %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&stored); err != nil {
				t.Errorf("decode upsert: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			if stored == nil {
				_, _ = w.Write([]byte("[]"))
				return
			}
			_ = json.NewEncoder(w).Encode([]map[string]json.RawMessage{stored})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	client := cloudsync.New(srv.URL, "anon-key", logger)
	ctx := context.Background()

	st := plan.DefaultState()
	st.ActiveProfile = "Aleksi"
	st.Profiles["Aleksi"] = plan.DefaultProfile("Aleksi")

	if err := client.Push(ctx, st); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if st.SyncUserID == "" {
		t.Fatal("Push did not assign a sync identity")
	}

	got, err := client.Pull(ctx, st.SyncUserID)
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if got.ActiveProfile != "Aleksi" {
		t.Errorf("ActiveProfile = %q, want %q", got.ActiveProfile, "Aleksi")
	}
}

func TestClient_pullEscapesProfileID(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	var seen struct {
		profileID string
		limit     string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		seen.profileID = q.Get("profile_id")
		seen.limit = q.Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	client := cloudsync.New(srv.URL, "anon-key", logger)
	hostile := "abc&limit=100&select=*"
	if _, err := client.Pull(context.Background(), hostile); err == nil {
		t.Fatal("Pull of a missing row should fail")
	}

	// The whole id must arrive inside the profile_id filter, not as extra
	// query parameters.
	if seen.profileID != "eq."+hostile {
		t.Errorf("profile_id filter = %q, want %q", seen.profileID, "eq."+hostile)
	}
	if seen.limit != "1" {
		t.Errorf("limit = %q, want 1", seen.limit)
	}
}

func TestClient_unconfiguredIsNoop(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	client := cloudsync.New("", "", logger)

	if client.Configured() {
		t.Fatal("empty client reports configured")
	}
	if err := client.Push(context.Background(), plan.DefaultState()); err != nil {
		t.Fatalf("Push on unconfigured client: %v", err)
	}
	if _, err := client.Pull(context.Background(), "someone"); err == nil {
		t.Fatal("Pull on unconfigured client should fail")
	}
}
