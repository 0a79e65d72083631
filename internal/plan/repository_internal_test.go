package plan

import (
	"encoding/json"
	"testing"

	"github.com/akoskinen/liftblock/internal/sqlite"
	"github.com/akoskinen/liftblock/internal/testhelpers"
)

func testRepository(t *testing.T) *repository {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
	})
	return newRepository(db, logger)
}

func TestRepository_loadMissingReturnsDefault(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)
	st, err := repo.Load(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if st.ActiveProfile == "" {
		t.Error("default state has no active profile")
	}
	if _, ok := st.Profiles[st.ActiveProfile]; !ok {
		t.Errorf("active profile %q missing from profiles", st.ActiveProfile)
	}
}

func TestRepository_saveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)

	st := DefaultState()
	p := st.Profiles[st.ActiveProfile]
	p.Maxes = Maxes{Snatch: 100, CleanJerk: 120, FrontSquat: 140, BackSquat: 160}
	p.WorkingMaxes = ComputeWorkingMaxes(p.Maxes)
	st.SyncUserID = "11111111-2222-3333-4444-555555555555"

	if err := repo.Save(t.Context(), st); err != nil {
		t.Fatal(err)
	}
	// A second save exercises the upsert path.
	p.Maxes.Snatch = 102
	if err := repo.Save(t.Context(), st); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if got.SyncUserID != st.SyncUserID {
		t.Errorf("sync id = %q, want %q", got.SyncUserID, st.SyncUserID)
	}
	if got.Profiles[got.ActiveProfile].Maxes.Snatch != 102 {
		t.Errorf("snatch max = %v, want the second save's 102", got.Profiles[got.ActiveProfile].Maxes.Snatch)
	}
}

func TestDecodeState_clampsLegacyAdjustments(t *testing.T) {
	t.Parallel()
	st := DefaultState()
	st.Profiles[st.ActiveProfile].LiftAdjustments = map[string]float64{
		LiftSnatch:    0.30,
		LiftCleanJerk: -0.30,
	}
	document, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := decodeState(document, 1)
	if err != nil {
		t.Fatal(err)
	}
	adj := decoded.Profiles[decoded.ActiveProfile].LiftAdjustments
	if adj[LiftSnatch] != maxLiftAdjustment {
		t.Errorf("snatch adjustment = %v, want clamped to %v", adj[LiftSnatch], maxLiftAdjustment)
	}
	if adj[LiftCleanJerk] != -maxLiftAdjustment {
		t.Errorf("cj adjustment = %v, want clamped to %v", adj[LiftCleanJerk], -maxLiftAdjustment)
	}

	// Current-version documents keep what they stored.
	current, err := decodeState(document, stateSchemaVersion)
	if err != nil {
		t.Fatal(err)
	}
	if got := current.Profiles[current.ActiveProfile].LiftAdjustments[LiftSnatch]; got != 0.30 {
		t.Errorf("current-version adjustment = %v, want 0.30 untouched", got)
	}
}

func TestDecodeState_garbageFails(t *testing.T) {
	t.Parallel()
	if _, err := decodeState([]byte("{"), stateSchemaVersion); err == nil {
		t.Error("truncated document decoded without error")
	}
}
