package character

import "github.com/cory-johannsen/investigator/internal/game/ruleset"

const (
	hpDivisor = 10
	mpDivisor = 5
	movBase   = 7
)

// ApplyFocus adds the profession's attribute focus bonuses and clamps each
// focused score to [AttributeMin, FocusedAttributeMax]. Scores the
// profession does not focus are returned unchanged. A nil profession
// returns attrs as given.
func ApplyFocus(attrs Attributes, prof *ruleset.Profession) Attributes {
	if prof == nil {
		return attrs
	}
	for key, bonus := range prof.AttributeFocus {
		if !key.Valid() {
			continue
		}
		attrs = attrs.With(key, clamp(attrs.Get(key)+bonus, AttributeMin, FocusedAttributeMax))
	}
	return attrs
}

// DeriveSecondary computes hit points, sanity, luck, magic points and
// movement rate from focus-adjusted attributes.
//
//	hp   = clamp((con+siz)/10 + hpModifier, 1, 30)
//	san  = clamp(pow, 0, 99), luck likewise
//	mp   = clamp(pow/5, 1, 20)
//	mov  = 9 if str and dex both exceed siz, 8 if either reaches siz, else 7
func DeriveSecondary(attrs Attributes, prof *ruleset.Profession) SecondaryStats {
	hpMod := 0
	if prof != nil {
		hpMod = prof.HPModifier
	}
	return SecondaryStats{
		HP:   clamp((attrs.Con+attrs.Siz)/hpDivisor+hpMod, 1, 30),
		SAN:  clamp(attrs.Pow, 0, 99),
		Luck: clamp(attrs.Pow, 0, 99),
		MP:   clamp(attrs.Pow/mpDivisor, 1, 20),
		MOV:  movementRate(attrs),
	}
}

func movementRate(attrs Attributes) int {
	switch {
	case attrs.Str > attrs.Siz && attrs.Dex > attrs.Siz:
		return movBase + 2
	case attrs.Str >= attrs.Siz || attrs.Dex >= attrs.Siz:
		return movBase + 1
	default:
		return movBase
	}
}

// CalculateBudget returns the occupation and personal skill point pools.
//
// Occupation is the sum of attribute × multiplier over the profession's
// formula terms, or edu×2 + int when there is no profession or it declares
// no terms. Terms may repeat an attribute. Fractional multipliers are summed
// exactly and the total is truncated once. Personal is always int×2.
//
// Postcondition: both pools are >= 0.
func CalculateBudget(attrs Attributes, prof *ruleset.Profession) SkillBudget {
	occupation := float64(attrs.Edu*2 + attrs.Int)
	if prof != nil && len(prof.SkillFormulas) > 0 {
		occupation = 0
		for _, term := range prof.SkillFormulas {
			occupation += float64(attrs.Get(term.Attribute)) * term.Multiplier
		}
	}
	return SkillBudget{
		Occupation: max(int(occupation), 0),
		Personal:   max(attrs.Int*2, 0),
	}
}

// BuildThresholds returns the check thresholds for all eight attributes.
func BuildThresholds(attrs Attributes) map[ruleset.Attribute]Threshold {
	keys := ruleset.Attributes()
	out := make(map[ruleset.Attribute]Threshold, len(keys))
	for _, k := range keys {
		out[k] = ThresholdFor(attrs.Get(k))
	}
	return out
}

// SkillLookup resolves skill definitions by id.
type SkillLookup interface {
	Skill(id string) (*ruleset.Skill, bool)
}

// ResolveSignatureSkills maps the profession's signature skill ids to their
// definitions in declared order. Ids with no definition are dropped.
func ResolveSignatureSkills(prof *ruleset.Profession, skills SkillLookup) []ruleset.Skill {
	if prof == nil {
		return []ruleset.Skill{}
	}
	out := make([]ruleset.Skill, 0, len(prof.SignatureSkills))
	for _, id := range prof.SignatureSkills {
		if s, ok := skills.Skill(id); ok && s != nil {
			out = append(out, *s)
		}
	}
	return out
}
