// Package dice provides the randomness capability and roll-result types used
// by attribute generation.
package dice

import "fmt"

// RollResult records one evaluated expression: the individual dice, the flat
// modifier, and the multiplier applied to their sum.
//
// Postcondition: Total() == (sum(Dice) + Modifier) * Multiplier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+6*5"
	Dice       []int  // individual die results
	Modifier   int    // flat modifier (may be negative)
	Multiplier int    // applied to the modified sum; 1 when absent
}

// Total returns the modified sum scaled by the multiplier.
//
// A zero Multiplier is treated as 1 so hand-built results stay meaningful.
func (r RollResult) Total() int {
	sum := r.Modifier
	for _, d := range r.Dice {
		sum += d
	}
	if r.Multiplier == 0 {
		return sum
	}
	return sum * r.Multiplier
}

// String returns an audit string such as "2d6+6*5 → [3 4] +6 ×5 = 65".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	mult := r.Multiplier
	if mult == 0 {
		mult = 1
	}
	return fmt.Sprintf("%s → %v %+d ×%d = %d", r.Expression, r.Dice, r.Modifier, mult, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Die rolls a single die with the given number of sides.
//
// Precondition: sides >= 1; src must be non-nil.
// Postcondition: Returns a value in [1, sides].
func Die(src Source, sides int) int {
	return src.Intn(sides) + 1
}
