package skill

import (
	"fmt"

	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

// Catalog is the read-only skill table the engine consults.
type Catalog interface {
	Skill(id string) (*ruleset.Skill, bool)
	Skills() []*ruleset.Skill
}

// Balance is what is left of each budget after an allocation. Unlike
// character.SkillBudget it may go negative when attributes or profession
// changed under an existing allocation.
type Balance struct {
	Occupation int `json:"occupation" yaml:"occupation"`
	Personal   int `json:"personal" yaml:"personal"`
}

// Get returns the balance of bucket.
func (b Balance) Get(bucket Bucket) int {
	if bucket == BucketOccupation {
		return b.Occupation
	}
	return b.Personal
}

// Complete reports whether both budgets are spent exactly.
func (b Balance) Complete() bool {
	return b.Occupation == 0 && b.Personal == 0
}

// OverBudget reports whether either budget is overspent.
func (b Balance) OverBudget() bool {
	return b.Occupation < 0 || b.Personal < 0
}

// Engine answers allocation questions against a skill catalog. It holds no
// allocation state; callers pass the allocation in and receive new ones back.
type Engine struct {
	catalog Catalog
}

// NewEngine returns an Engine over catalog.
//
// Precondition: catalog must be non-nil.
func NewEngine(catalog Catalog) *Engine {
	if catalog == nil {
		panic("skill.NewEngine: precondition violated: catalog must be non-nil")
	}
	return &Engine{catalog: catalog}
}

// InitialValue returns the untrained value of skillID. Dodge is half of
// dexterity, the native language equals education, and every other skill
// uses its static base. Unknown ids score 0.
func (e *Engine) InitialValue(skillID string, attrs character.Attributes) int {
	s, ok := e.catalog.Skill(skillID)
	if !ok || s == nil {
		return 0
	}
	switch skillID {
	case SkillDodge:
		return attrs.Dex / 2
	case SkillLanguageNative:
		return attrs.Edu
	}
	return s.Base
}

// CurrentValue returns the initial value plus the allocated points.
func (e *Engine) CurrentValue(skillID string, attrs character.Attributes, alloc Allocation) int {
	return e.InitialValue(skillID, attrs) + alloc.Points(skillID)
}

// UsedPoints sums the positive allocations that draw from bucket. Entries
// for unknown skills and non-positive entries count for nothing.
func (e *Engine) UsedPoints(alloc Allocation, bucket Bucket, prof *ruleset.Profession) int {
	used := 0
	for id, points := range alloc {
		if points <= 0 {
			continue
		}
		if _, ok := e.catalog.Skill(id); !ok {
			continue
		}
		if BucketFor(id, prof) == bucket {
			used += points
		}
	}
	return used
}

// Remaining returns budget minus the points used in each bucket.
func (e *Engine) Remaining(alloc Allocation, prof *ruleset.Profession, budget character.SkillBudget) Balance {
	return Balance{
		Occupation: budget.Occupation - e.UsedPoints(alloc, BucketOccupation, prof),
		Personal:   budget.Personal - e.UsedPoints(alloc, BucketPersonal, prof),
	}
}

// Validate checks whether skillID may hold points allocated points, given
// the rest of alloc. Checks run in order: allocatable, ceiling, sign.
//
// Postcondition: Returns nil, ErrNotAllocatable, ErrCeilingExceeded or
// ErrNegativeAllocation.
func (e *Engine) Validate(skillID string, points int, attrs character.Attributes, alloc Allocation, prof *ruleset.Profession) error {
	if !CanAllocate(skillID) {
		return ErrNotAllocatable
	}
	proposed := alloc.Clone()
	proposed[skillID] = points
	if e.CurrentValue(skillID, attrs, proposed) > Ceiling(skillID, prof) {
		return ErrCeilingExceeded
	}
	if points < 0 {
		return ErrNegativeAllocation
	}
	return nil
}

// Adjust moves the points on skillID by delta and returns the resulting
// allocation. alloc is never modified. The new point count is floored at
// zero and zero entries are removed. Increases are validated and must fit
// in the remaining budget of the skill's bucket; decreases only require the
// skill to be allocatable.
//
// Postcondition: On error the returned allocation is nil and alloc is the
// state to keep.
func (e *Engine) Adjust(skillID string, delta int, attrs character.Attributes, alloc Allocation, prof *ruleset.Profession, budget character.SkillBudget) (Allocation, error) {
	if _, ok := e.catalog.Skill(skillID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, skillID)
	}
	current := alloc.Points(skillID)
	next := max(0, current+delta)

	if delta > 0 {
		if err := e.Validate(skillID, next, attrs, alloc, prof); err != nil {
			return nil, fmt.Errorf("adjusting %q: %w", skillID, err)
		}
		bucket := BucketFor(skillID, prof)
		if e.Remaining(alloc, prof, budget).Get(bucket) < next-current {
			return nil, fmt.Errorf("adjusting %q: %w", skillID, ErrBudgetExceeded)
		}
	} else if !CanAllocate(skillID) {
		return nil, fmt.Errorf("adjusting %q: %w", skillID, ErrNotAllocatable)
	}

	out := alloc.Clone()
	if next == 0 {
		delete(out, skillID)
	} else {
		out[skillID] = next
	}
	return out, nil
}

// OccupationSkills returns the definitions of prof's signature skills in
// declared order. Ids with no definition are dropped.
func (e *Engine) OccupationSkills(prof *ruleset.Profession) []*ruleset.Skill {
	if prof == nil {
		return nil
	}
	out := make([]*ruleset.Skill, 0, len(prof.SignatureSkills))
	for _, id := range prof.SignatureSkills {
		if s, ok := e.catalog.Skill(id); ok && s != nil {
			out = append(out, s)
		}
	}
	return out
}

// PersonalSkills returns every allocatable skill outside prof's signature
// set, in catalog order.
func (e *Engine) PersonalSkills(prof *ruleset.Profession) []*ruleset.Skill {
	var out []*ruleset.Skill
	for _, s := range e.catalog.Skills() {
		if prof.IsSignature(s.ID) || !CanAllocate(s.ID) {
			continue
		}
		out = append(out, s)
	}
	return out
}
