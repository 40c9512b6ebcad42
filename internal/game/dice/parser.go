package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression represents a parsed dice expression ready to be rolled.
//
// Invariant: Count >= 1, Sides >= 2, Multiplier >= 1 after a successful Parse.
type Expression struct {
	Raw        string // original input string
	Count      int    // number of dice
	Sides      int    // faces per die
	Modifier   int    // flat modifier added to the dice sum (may be negative)
	Multiplier int    // applied to (dice sum + Modifier)
}

// Parse parses a dice expression string into an Expression.
//
// Supported forms: "d20", "3d6", "2d6+6", "1d4-1", "3d6*5", "2d6+6*5".
// A trailing "*N" (or "xN") scales the whole modified sum, so "2d6+6*5"
// evaluates as (2d6 + 6) × 5.
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if strings.TrimSpace(expr) == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	raw := expr
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))

	multiplier := 1
	if i := strings.LastIndexAny(s, "*x"); i >= 0 {
		m, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid multiplier in %q: %w", raw, err)
		}
		if m < 1 {
			return Expression{}, fmt.Errorf("dice: invalid multiplier in %q: must be >= 1", raw)
		}
		multiplier = m
		s = s[:i]
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if c <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
		count = c
	}

	rest := s[dIdx+1:]
	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", raw)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Expression{
		Raw:        raw,
		Count:      count,
		Sides:      sides,
		Modifier:   modifier,
		Multiplier: multiplier,
	}, nil
}

// Min returns the smallest total the expression can produce.
func (e Expression) Min() int {
	return (e.Count + e.Modifier) * e.Multiplier
}

// Max returns the largest total the expression can produce.
func (e Expression) Max() int {
	return (e.Count*e.Sides + e.Modifier) * e.Multiplier
}
