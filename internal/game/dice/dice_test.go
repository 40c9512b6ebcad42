package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/investigator/internal/game/dice"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+6*5",
		Dice:       []int{3, 4},
		Modifier:   6,
		Multiplier: 5,
	}
	assert.Equal(t, 65, r.Total())
}

func TestRollResult_Total_ZeroMultiplierActsAsOne(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{
		Expression: "2d6+6*5",
		Dice:       []int{3, 4},
		Modifier:   6,
		Multiplier: 5,
	}
	assert.Equal(t, "2d6+6*5 → [3 4] +6 ×5 = 65", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20, Multiplier: 1}},
		{"3d6", dice.Expression{Raw: "3d6", Count: 3, Sides: 6, Multiplier: 1}},
		{"1d4-1", dice.Expression{Raw: "1d4-1", Count: 1, Sides: 4, Modifier: -1, Multiplier: 1}},
		{"3d6*5", dice.Expression{Raw: "3d6*5", Count: 3, Sides: 6, Multiplier: 5}},
		{"2d6+6*5", dice.Expression{Raw: "2d6+6*5", Count: 2, Sides: 6, Modifier: 6, Multiplier: 5}},
		{"2D6+6x5", dice.Expression{Raw: "2D6+6x5", Count: 2, Sides: 6, Modifier: 6, Multiplier: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "6", "0d6", "2d1", "2dx", "3d6*0", "3d6*a", "2d6+q"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestExpression_Bounds(t *testing.T) {
	physical := dice.MustParse("3d6*5")
	assert.Equal(t, 15, physical.Min())
	assert.Equal(t, 90, physical.Max())

	mental := dice.MustParse("2d6+6*5")
	assert.Equal(t, 40, mental.Min())
	assert.Equal(t, 90, mental.Max())
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestRoll_UsesSequenceSource(t *testing.T) {
	src := dice.NewSequenceSource(6, 5, 4)
	res := dice.Roll(dice.MustParse("3d6*5"), src)
	assert.Equal(t, []int{6, 5, 4}, res.Dice)
	assert.Equal(t, 75, res.Total())
}

func TestLoggedRoller_Die(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSequenceSource(3), zap.NewNop())
	assert.Equal(t, 3, r.Die(6))
	assert.Equal(t, 15, r.Roll(dice.MustParse("1d6*5")).Total())
}

func TestSequenceSource_ClampsToSides(t *testing.T) {
	src := dice.NewSequenceSource(9, 0)
	assert.Equal(t, 5, src.Intn(6))
	assert.Equal(t, 0, src.Intn(6))
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

// Property: Die always lands in [1, sides].
func TestDie_InRange_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		sides := rapid.IntRange(1, 100).Draw(rt, "sides")
		v := dice.Die(src, sides)
		if v < 1 || v > sides {
			rt.Fatalf("Die(%d) = %d out of range", sides, v)
		}
	})
}

// Property: a roll total always lies within the expression's bounds.
func TestRoll_WithinBounds_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(0, 10).Draw(rt, "mod")
		mult := rapid.IntRange(1, 10).Draw(rt, "mult")
		expr := dice.MustParse(fmt.Sprintf("%dd%d+%d*%d", count, sides, mod, mult))

		total := dice.Roll(expr, src).Total()
		if total < expr.Min() || total > expr.Max() {
			rt.Fatalf("total %d outside [%d, %d] for %s", total, expr.Min(), expr.Max(), expr.Raw)
		}
	})
}

func TestRollResult_String_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faces := rapid.SliceOfN(rapid.IntRange(1, 6), 1, 6).Draw(rt, "dice")
		mod := rapid.IntRange(-10, 10).Draw(rt, "modifier")
		r := dice.RollResult{Expression: "Nd6", Dice: faces, Modifier: mod, Multiplier: 5}
		s := r.String()
		assert.True(rt, strings.HasPrefix(s, "Nd6 "))
		assert.True(rt, strings.HasSuffix(s, fmt.Sprintf("= %d", r.Total())))
	})
}
