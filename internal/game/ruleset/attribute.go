package ruleset

import (
	"fmt"
	"strings"
)

// Attribute identifies one of the eight base characteristics.
type Attribute string

const (
	Strength     Attribute = "str"
	Constitution Attribute = "con"
	Dexterity    Attribute = "dex"
	Intelligence Attribute = "int"
	Power        Attribute = "pow" // willpower
	Size         Attribute = "siz"
	Appearance   Attribute = "app"
	Education    Attribute = "edu"
)

var attributeOrder = []Attribute{
	Strength, Constitution, Dexterity, Intelligence,
	Power, Size, Appearance, Education,
}

var attributeLongNames = map[string]Attribute{
	"strength":     Strength,
	"constitution": Constitution,
	"dexterity":    Dexterity,
	"intelligence": Intelligence,
	"power":        Power,
	"willpower":    Power,
	"size":         Size,
	"appearance":   Appearance,
	"education":    Education,
}

// Attributes returns the eight attribute keys in display order.
//
// Postcondition: Returns a fresh slice of length 8; callers may modify it.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributeOrder))
	copy(out, attributeOrder)
	return out
}

// Valid reports whether a is one of the eight known keys.
func (a Attribute) Valid() bool {
	for _, k := range attributeOrder {
		if a == k {
			return true
		}
	}
	return false
}

// Abbrev returns the upper-case three letter form, e.g. "STR".
func (a Attribute) Abbrev() string {
	return strings.ToUpper(string(a))
}

// ParseAttribute accepts a short key ("str"), its upper-case form ("STR"),
// or the long name ("strength", "willpower").
func ParseAttribute(s string) (Attribute, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if a := Attribute(key); a.Valid() {
		return a, nil
	}
	if a, ok := attributeLongNames[key]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown attribute %q", s)
}

// UnmarshalText lets YAML and JSON map keys use any form ParseAttribute accepts.
func (a *Attribute) UnmarshalText(text []byte) error {
	parsed, err := ParseAttribute(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
