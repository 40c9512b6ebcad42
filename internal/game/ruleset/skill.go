package ruleset

import (
	"errors"
	"fmt"
)

// Category groups skills for display.
type Category string

const (
	CategoryKnowledge     Category = "knowledge"
	CategorySocial        Category = "social"
	CategoryInvestigation Category = "investigation"
	CategoryCombat        Category = "combat"
	CategorySurvival      Category = "survival"
	CategoryCraft         Category = "craft"
	CategoryMedical       Category = "medical"
)

var categoryOrder = []Category{
	CategoryKnowledge, CategorySocial, CategoryInvestigation,
	CategoryCombat, CategorySurvival, CategoryCraft, CategoryMedical,
}

// Categories returns the seven categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	for _, k := range categoryOrder {
		if c == k {
			return true
		}
	}
	return false
}

// Skill is a static skill definition. Base is the untrained percentage.
type Skill struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Base        int      `yaml:"base" json:"base"`
	Description string   `yaml:"description" json:"description,omitempty"`
}

// Validate checks the fields a loaded skill must carry.
func (s *Skill) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("skill %q: name must not be empty", s.ID))
	}
	if !s.Category.Valid() {
		errs = append(errs, fmt.Errorf("skill %q: unknown category %q", s.ID, s.Category))
	}
	if s.Base < 0 || s.Base > 99 {
		errs = append(errs, fmt.Errorf("skill %q: base %d must be within [0, 99]", s.ID, s.Base))
	}
	return errors.Join(errs...)
}
