package character

import "github.com/cory-johannsen/investigator/internal/game/ruleset"

// Calculator composes the derivation steps into a Sheet.
type Calculator struct {
	skills SkillLookup
}

// NewCalculator returns a Calculator resolving signature skills through skills.
//
// Precondition: skills must be non-nil.
func NewCalculator(skills SkillLookup) *Calculator {
	if skills == nil {
		panic("character.NewCalculator: precondition violated: skills must be non-nil")
	}
	return &Calculator{skills: skills}
}

// Calculate derives the full sheet for in under prof (which may be nil).
// The focus-adjusted attributes feed every later step.
//
// Postcondition: the result depends only on (in, prof) and the skill table;
// in is not modified.
func (c *Calculator) Calculate(in Input, prof *ruleset.Profession) Sheet {
	attrs := ApplyFocus(in.Attributes, prof)
	return Sheet{
		Name:            in.Name,
		ProfessionID:    in.ProfessionID,
		Attributes:      attrs,
		SecondaryStats:  DeriveSecondary(attrs, prof),
		SkillBudget:     CalculateBudget(attrs, prof),
		Thresholds:      BuildThresholds(attrs),
		SignatureSkills: ResolveSignatureSkills(prof, c.skills),
	}
}
