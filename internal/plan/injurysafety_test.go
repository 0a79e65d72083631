package plan_test

import (
	"strings"
	"testing"
)

// assertShoulderSafe fails when an exercise name is one a shoulder-injured
// athlete must never see: a full snatch catch or an overhead squat.
func assertShoulderSafe(t *testing.T, week, day int, name string) {
	t.Helper()
	n := strings.ToLower(name)
	if strings.Contains(n, "overhead squat") {
		t.Errorf("week %d day %d: overhead squat %q prescribed with shoulder injury", week, day, name)
	}
	if strings.Contains(n, "snatch") && !strings.Contains(n, "pull") && !strings.Contains(n, "power") {
		t.Errorf("week %d day %d: snatch catch %q prescribed with shoulder injury", week, day, name)
	}
}
