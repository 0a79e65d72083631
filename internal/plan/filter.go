package plan

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed injuryrules.yaml
var injuryRulesYAML []byte

// injuryRule excludes an exercise when its lowercased name contains every
// Match substring and none of the Unless substrings.
type injuryRule struct {
	Match  []string `yaml:"match"`
	Unless []string `yaml:"unless"`
	Reason string   `yaml:"reason"`
}

type fallbackVariant struct {
	Name    string `yaml:"name"`
	LiftKey string `yaml:"liftKey"`
}

type injuryRuleSet struct {
	Rules     map[Injury][]injuryRule    `yaml:"rules"`
	Fallbacks map[string]fallbackVariant `yaml:"fallbacks"`
}

var injuryRules = func() injuryRuleSet {
	var rs injuryRuleSet
	if err := yaml.Unmarshal(injuryRulesYAML, &rs); err != nil {
		panic(fmt.Sprintf("parse embedded injury rules: %v", err))
	}
	return rs
}()

func (r injuryRule) excludes(nameLower string) bool {
	for _, m := range r.Match {
		if !strings.Contains(nameLower, m) {
			return false
		}
	}
	for _, u := range r.Unless {
		if strings.Contains(nameLower, u) {
			return false
		}
	}
	return true
}

// safeForInjuries reports whether an exercise name passes every rule for the
// given injury tags.
func safeForInjuries(name string, injuries []Injury) bool {
	nameLower := strings.ToLower(name)
	for _, injury := range injuries {
		for _, rule := range injuryRules.Rules[injury] {
			if rule.excludes(nameLower) {
				return false
			}
		}
	}
	return true
}

// filteredPool applies the injury and block-variant filters to a family's
// pool. Filtering never empties the result: a filtered-out family falls back
// to its emergency variant, and a block-variant filter that would remove
// everything is reverted.
func filteredPool(family string, p *Profile) []Variant {
	pool := swapPools[family]
	if len(pool) == 0 {
		return nil
	}

	if len(p.Injuries) > 0 {
		safe := make([]Variant, 0, len(pool))
		for _, v := range pool {
			if safeForInjuries(v.Name, p.Injuries) {
				safe = append(safe, v)
			}
		}
		if len(safe) == 0 {
			if fb, ok := injuryRules.Fallbacks[family]; ok {
				safe = []Variant{{Name: fb.Name, LiftKey: fb.LiftKey}}
			} else {
				safe = pool
			}
		}
		pool = safe
	}

	if !p.IncludeBlocks {
		noBlocks := make([]Variant, 0, len(pool))
		for _, v := range pool {
			nameLower := strings.ToLower(v.Name)
			if !strings.Contains(nameLower, "block") {
				noBlocks = append(noBlocks, v)
			}
		}
		if len(noBlocks) > 0 {
			pool = noBlocks
		} else {
			pool = swapPools[family]
		}
	}

	return pool
}

// chooseVariation deterministically resolves a slot to a concrete exercise
// variation for the week. Competition-focused athletes bias toward the
// family's primary variation during intensification.
func chooseVariation(family string, p *Profile, weekIndex int, phase Phase, slotKey string, dayIndex int) Variant {
	pool := filteredPool(family, p)
	if len(pool) == 0 {
		return Variant{Name: slotKey}
	}

	preferSpecific := p.AthleteMode == ModeCompetition || p.ProgramType == ProgramCompetition
	key := selectionKey(p, family, slotKey, phase, dayIndex)

	if preferSpecific && phase == PhaseIntensification {
		h := hash32(fmt.Sprintf("%s|w%d", key, weekIndex))
		if h%10 < 7 {
			return pool[0]
		}
	}

	v, _ := pickFromPool(pool, key, weekIndex)
	return v
}

// chooseVariationExcluding is chooseVariation with duplicate avoidance. The
// exclusion is ignored when it would leave nothing to pick.
func chooseVariationExcluding(family string, p *Profile, weekIndex int, phase Phase, slotKey string, exclude []string, dayIndex int) Variant {
	pool := filteredPool(family, p)
	if len(pool) == 0 {
		return Variant{Name: slotKey}
	}

	available := make([]Variant, 0, len(pool))
	for _, v := range pool {
		excluded := false
		for _, name := range exclude {
			if v.Name == name {
				excluded = true
				break
			}
		}
		if !excluded {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		available = pool
	}

	preferSpecific := p.AthleteMode == ModeCompetition || p.ProgramType == ProgramCompetition
	key := selectionKey(p, family, slotKey, phase, dayIndex)

	if preferSpecific && phase == PhaseIntensification {
		h := hash32(fmt.Sprintf("%s|w%d", key, weekIndex))
		if h%10 < 7 {
			return available[0]
		}
	}

	v, _ := pickFromPool(available, key, weekIndex)
	return v
}

func selectionKey(p *Profile, family, slotKey string, phase Phase, dayIndex int) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|d%d",
		p.LastBlockSeed, family, slotKey, phase, p.ProgramType, p.AthleteMode, dayIndex)
}

// chooseHypertrophyExercise picks from a hypertrophy pool. The selection key
// deliberately omits the week so the same exercise carries through the whole
// block and its loads can progress.
func chooseHypertrophyExercise(poolName string, p *Profile, slotKey string, exclude []string) Variant {
	pool := hypertrophyPools[poolName]
	if len(pool) == 0 {
		return Variant{Name: poolName}
	}
	key := fmt.Sprintf("%d|hyp|%s|%s|%s", p.LastBlockSeed, poolName, slotKey, p.ProgramType)
	v, _ := pickFromPoolExcluding(pool, key, 0, exclude)
	return v
}
