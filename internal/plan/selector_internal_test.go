package plan

import "testing"

// The hash constants are a stable contract: changing them re-rolls every
// exercise selection in existing blocks. These are the standard 32-bit
// FNV-1a test vectors.
func TestHash32_frozenVectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
		{"b", 0xe70c2de5},
		{"foobar", 0xbf9cf968},
	}
	for _, tt := range tests {
		if got := hash32(tt.in); got != tt.want {
			t.Errorf("hash32(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestPickFromPool_deterministic(t *testing.T) {
	t.Parallel()
	pool := []Variant{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}

	first, ok := pickFromPool(pool, "seed|snatch|snatch_main", 3)
	if !ok {
		t.Fatal("pick failed on non-empty pool")
	}
	for i := 0; i < 100; i++ {
		again, _ := pickFromPool(pool, "seed|snatch|snatch_main", 3)
		if again.Name != first.Name {
			t.Fatalf("pick changed between calls: %q then %q", first.Name, again.Name)
		}
	}
}

func TestPickFromPool_coversWholePool(t *testing.T) {
	t.Parallel()
	pool := []Variant{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}

	seen := map[string]bool{}
	for week := 0; week < 64; week++ {
		v, ok := pickFromPool(pool, "variety", week)
		if !ok {
			t.Fatal("pick failed on non-empty pool")
		}
		seen[v.Name] = true
	}
	if len(seen) < 2 {
		t.Errorf("64 weeks visited only %d variants", len(seen))
	}
}

func TestPickFromPool_emptyPool(t *testing.T) {
	t.Parallel()
	if _, ok := pickFromPool(nil, "x", 0); ok {
		t.Error("pick reported ok for an empty pool")
	}
}

func TestPickFromPoolExcluding_fullExclusionFallsBack(t *testing.T) {
	t.Parallel()
	pool := []Variant{{Name: "A"}, {Name: "B"}}

	v, ok := pickFromPoolExcluding(pool, "x", 0, []string{"A", "B"})
	if !ok {
		t.Fatal("pick failed")
	}
	if v.Name != "A" {
		t.Errorf("full exclusion picked %q, want first entry %q", v.Name, "A")
	}
}

func TestPickFromPoolExcluding_skipsExcluded(t *testing.T) {
	t.Parallel()
	pool := []Variant{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	for week := 0; week < 32; week++ {
		v, ok := pickFromPoolExcluding(pool, "k", week, []string{"B"})
		if !ok {
			t.Fatal("pick failed")
		}
		if v.Name == "B" {
			t.Fatalf("week %d picked excluded variant", week)
		}
	}
}
