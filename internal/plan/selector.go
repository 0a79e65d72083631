package plan

import (
	"fmt"
	"math"
	"slices"
)

// hash32 is 32-bit FNV-1a. The constants and the index reduction in
// pickFromPool are a stable contract: changing either re-rolls every
// exercise selection in existing blocks.
func hash32(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// pickFromPool deterministically selects a variant for a selection key and
// week. The same (pool, key, week) triple always yields the same pick.
func pickFromPool(pool []Variant, key string, weekIndex int) (Variant, bool) {
	if len(pool) == 0 {
		return Variant{}, false
	}
	h := hash32(fmt.Sprintf("%s|w%d", key, weekIndex))
	idx := (h % uint32(len(pool)*7)) % uint32(len(pool))
	return pool[idx], true
}

// pickFromPoolExcluding is pickFromPool over the pool minus excluded names.
// When exclusion empties the pool the first entry is returned so a slot is
// never left unfilled.
func pickFromPoolExcluding(pool []Variant, key string, weekIndex int, exclude []string) (Variant, bool) {
	if len(pool) == 0 {
		return Variant{}, false
	}
	available := make([]Variant, 0, len(pool))
	for _, v := range pool {
		if !slices.Contains(exclude, v.Name) {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return pool[0], true
	}
	return pickFromPool(available, key, weekIndex)
}

func clamp(n, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, n))
}

func roundTo(n, step float64) float64 {
	if step <= 0 {
		return n
	}
	return math.Round(n/step) * step
}
