// Package character derives a full character sheet from base attributes and
// a profession. Everything here is a pure function of its inputs.
package character

import "github.com/cory-johannsen/investigator/internal/game/ruleset"

// Attribute bounds for base (persisted) scores and for focus-adjusted scores.
const (
	AttributeMin        = 15
	AttributeMax        = 90
	AttributeStep       = 5
	FocusedAttributeMax = 95
)

// Attributes holds the eight base characteristic scores.
type Attributes struct {
	Str int `json:"str" yaml:"str"`
	Con int `json:"con" yaml:"con"`
	Dex int `json:"dex" yaml:"dex"`
	Int int `json:"int" yaml:"int"`
	Pow int `json:"pow" yaml:"pow"`
	Siz int `json:"siz" yaml:"siz"`
	App int `json:"app" yaml:"app"`
	Edu int `json:"edu" yaml:"edu"`
}

// DefaultAttributes returns the starting scores for a new character.
func DefaultAttributes() Attributes {
	return Attributes{Str: 60, Con: 55, Dex: 50, Int: 60, Pow: 50, Siz: 60, App: 50, Edu: 65}
}

// Get returns the score for key; unknown keys score 0.
func (a Attributes) Get(key ruleset.Attribute) int {
	switch key {
	case ruleset.Strength:
		return a.Str
	case ruleset.Constitution:
		return a.Con
	case ruleset.Dexterity:
		return a.Dex
	case ruleset.Intelligence:
		return a.Int
	case ruleset.Power:
		return a.Pow
	case ruleset.Size:
		return a.Siz
	case ruleset.Appearance:
		return a.App
	case ruleset.Education:
		return a.Edu
	}
	return 0
}

// With returns a copy of a with key set to value. Unknown keys leave a unchanged.
func (a Attributes) With(key ruleset.Attribute, value int) Attributes {
	switch key {
	case ruleset.Strength:
		a.Str = value
	case ruleset.Constitution:
		a.Con = value
	case ruleset.Dexterity:
		a.Dex = value
	case ruleset.Intelligence:
		a.Int = value
	case ruleset.Power:
		a.Pow = value
	case ruleset.Size:
		a.Siz = value
	case ruleset.Appearance:
		a.App = value
	case ruleset.Education:
		a.Edu = value
	}
	return a
}

// Total returns the sum of all eight scores.
func (a Attributes) Total() int {
	return a.Str + a.Con + a.Dex + a.Int + a.Pow + a.Siz + a.App + a.Edu
}

// WithDefaults fills any zero score from DefaultAttributes.
func (a Attributes) WithDefaults() Attributes {
	def := DefaultAttributes()
	for _, k := range ruleset.Attributes() {
		if a.Get(k) == 0 {
			a = a.With(k, def.Get(k))
		}
	}
	return a
}

// Normalized applies NormalizeAttribute to every score.
func (a Attributes) Normalized() Attributes {
	for _, k := range ruleset.Attributes() {
		a = a.With(k, NormalizeAttribute(a.Get(k)))
	}
	return a
}

// NormalizeAttribute enforces the input policy for a hand-entered score:
// values outside [AttributeMin, AttributeMax] are clamped, values inside are
// rounded to the nearest AttributeStep with halves rounding up.
func NormalizeAttribute(v int) int {
	if v < AttributeMin {
		return AttributeMin
	}
	if v > AttributeMax {
		return AttributeMax
	}
	return (v + AttributeStep/2) / AttributeStep * AttributeStep
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Input is the user-owned root state: everything else is derived from it.
// This is the record the persistence layer stores.
type Input struct {
	Name         string         `json:"name" yaml:"name"`
	ProfessionID string         `json:"professionId" yaml:"profession_id"`
	Attributes   Attributes     `json:"attributes" yaml:"attributes"`
	Skills       map[string]int `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// SecondaryStats are the values derived from attributes.
type SecondaryStats struct {
	HP   int `json:"hp" yaml:"hp"`
	SAN  int `json:"san" yaml:"san"`
	Luck int `json:"luck" yaml:"luck"`
	MP   int `json:"mp" yaml:"mp"`
	MOV  int `json:"mov" yaml:"mov"`
}

// Threshold holds the three check difficulties for one value.
type Threshold struct {
	Regular int `json:"regular" yaml:"regular"`
	Hard    int `json:"hard" yaml:"hard"`
	Extreme int `json:"extreme" yaml:"extreme"`
}

// ThresholdFor returns the regular/hard/extreme triple for value.
func ThresholdFor(value int) Threshold {
	return Threshold{Regular: value, Hard: value / 2, Extreme: value / 5}
}

// SkillBudget is the pair of skill point pools. Always derived, never stored.
type SkillBudget struct {
	Occupation int `json:"occupation" yaml:"occupation"`
	Personal   int `json:"personal" yaml:"personal"`
}

// Sheet is the derived, read-only character snapshot.
type Sheet struct {
	Name            string                          `json:"name" yaml:"name"`
	ProfessionID    string                          `json:"professionId" yaml:"profession_id"`
	Attributes      Attributes                      `json:"attributes" yaml:"attributes"`
	SecondaryStats  SecondaryStats                  `json:"secondaryStats" yaml:"secondary_stats"`
	Thresholds      map[ruleset.Attribute]Threshold `json:"thresholds" yaml:"thresholds"`
	SkillBudget     SkillBudget                     `json:"skillBudget" yaml:"skill_budget"`
	SignatureSkills []ruleset.Skill                 `json:"signatureSkills" yaml:"signature_skills"`
}
