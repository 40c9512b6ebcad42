package character

import (
	"github.com/cory-johannsen/investigator/internal/game/dice"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

var (
	// physicalRoll covers str, con, dex, app and pow: 15–90 in steps of 5.
	physicalRoll = dice.MustParse("3d6*5")
	// mentalRoll covers siz, int and edu: 40–90 in steps of 5.
	mentalRoll = dice.MustParse("2d6+6*5")
)

// rollOrder fixes the sequence dice are consumed in, so a scripted source
// maps predictably onto attributes.
var rollOrder = []struct {
	key  ruleset.Attribute
	expr dice.Expression
}{
	{ruleset.Strength, physicalRoll},
	{ruleset.Constitution, physicalRoll},
	{ruleset.Dexterity, physicalRoll},
	{ruleset.Appearance, physicalRoll},
	{ruleset.Power, physicalRoll},
	{ruleset.Size, mentalRoll},
	{ruleset.Intelligence, mentalRoll},
	{ruleset.Education, mentalRoll},
}

// Randomizer rolls a full attribute set.
type Randomizer struct {
	roller *dice.Roller
}

// NewRandomizer returns a Randomizer drawing dice from roller.
//
// Precondition: roller must be non-nil.
func NewRandomizer(roller *dice.Roller) *Randomizer {
	if roller == nil {
		panic("character.NewRandomizer: precondition violated: roller must be non-nil")
	}
	return &Randomizer{roller: roller}
}

// Roll generates all eight attributes and clamps each into
// [AttributeMin, AttributeMax].
func (r *Randomizer) Roll() Attributes {
	var attrs Attributes
	for _, step := range rollOrder {
		attrs = attrs.With(step.key, r.roller.Roll(step.expr).Total())
	}
	for _, k := range ruleset.Attributes() {
		attrs = attrs.With(k, clamp(attrs.Get(k), AttributeMin, AttributeMax))
	}
	return attrs
}
