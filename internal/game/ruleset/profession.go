package ruleset

import (
	"errors"
	"fmt"
	"slices"
)

// FormulaTerm is one attribute × multiplier contribution to a profession's
// occupation skill points. Multipliers may be fractional; callers truncate
// only the final sum.
type FormulaTerm struct {
	Attribute  Attribute `yaml:"attribute" json:"attribute"`
	Multiplier float64   `yaml:"multiplier" json:"multiplier"`
}

// Profession is an occupation template: signature skills, attribute focus
// bonuses, a hit point modifier, and the occupation skill point formula.
//
// Precondition: ID and Name must be non-empty after loading.
type Profession struct {
	ID              string            `yaml:"id" json:"id"`
	Name            string            `yaml:"name" json:"name"`
	Description     string            `yaml:"description" json:"description"`
	SignatureSkills []string          `yaml:"signature_skills" json:"signature_skills"`
	AttributeFocus  map[Attribute]int `yaml:"attribute_focus" json:"attribute_focus,omitempty"`
	HPModifier      int               `yaml:"hp_modifier" json:"hp_modifier"`
	SkillFormulas   []FormulaTerm     `yaml:"skill_formulas" json:"skill_formulas,omitempty"`
}

// IsSignature reports whether skillID is one of the profession's signature
// skills. A nil profession has none.
func (p *Profession) IsSignature(skillID string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.SignatureSkills, skillID)
}

// Validate checks the fields a loaded profession must carry.
//
// Postcondition: Returns nil or an error naming every violation.
func (p *Profession) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("profession %q: name must not be empty", p.ID))
	}
	for attr := range p.AttributeFocus {
		if !attr.Valid() {
			errs = append(errs, fmt.Errorf("profession %q: unknown focus attribute %q", p.ID, attr))
		}
	}
	for i, term := range p.SkillFormulas {
		if !term.Attribute.Valid() {
			errs = append(errs, fmt.Errorf("profession %q: formula term %d has unknown attribute %q", p.ID, i, term.Attribute))
		}
	}
	seen := make(map[string]bool, len(p.SignatureSkills))
	for _, id := range p.SignatureSkills {
		if seen[id] {
			errs = append(errs, fmt.Errorf("profession %q: signature skill %q listed twice", p.ID, id))
		}
		seen[id] = true
	}
	return errors.Join(errs...)
}
