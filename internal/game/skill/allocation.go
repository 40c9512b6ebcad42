// Package skill implements skill point allocation: initial and current
// values, ceilings, bucket accounting and validated adjustments.
package skill

import (
	"errors"

	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

// Skill ids with special allocation rules.
const (
	SkillDodge          = "dodge"
	SkillLanguageNative = "language-native"
	SkillCthulhuMythos  = "cthulhu-mythos"
)

// Per-skill value ceilings.
const (
	SignatureCeiling = 80
	NormalCeiling    = 50
)

// Allocation conditions. Each one means the proposed change was not applied.
var (
	ErrNotAllocatable     = errors.New("skill cannot receive points")
	ErrCeilingExceeded    = errors.New("skill value would exceed its ceiling")
	ErrNegativeAllocation = errors.New("allocated points must not be negative")
	ErrBudgetExceeded     = errors.New("not enough points left in budget")
	ErrUnknownSkill       = errors.New("unknown skill")
)

// Allocation maps skill id to points spent on top of the skill's initial
// value. A missing key means zero.
type Allocation map[string]int

// Points returns the points allocated to id.
func (a Allocation) Points(id string) int {
	return a[id]
}

// Clone returns an independent copy. A nil Allocation clones to an empty one.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Bucket names the budget a skill draws from.
type Bucket string

const (
	BucketOccupation Bucket = "occupation"
	BucketPersonal   Bucket = "personal"
)

// BucketFor returns the budget skillID draws from under prof: signature
// skills spend occupation points, everything else personal points.
func BucketFor(skillID string, prof *ruleset.Profession) Bucket {
	if prof.IsSignature(skillID) {
		return BucketOccupation
	}
	return BucketPersonal
}

// CanAllocate reports whether skillID may receive points at all.
func CanAllocate(skillID string) bool {
	return skillID != SkillCthulhuMythos
}

// Ceiling returns the highest current value skillID may reach under prof.
func Ceiling(skillID string, prof *ruleset.Profession) int {
	if prof.IsSignature(skillID) {
		return SignatureCeiling
	}
	return NormalCeiling
}
