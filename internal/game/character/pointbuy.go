package character

import "github.com/cory-johannsen/investigator/internal/game/ruleset"

// Point-buy pool constants.
const (
	PointBuyTotal = 480
	PointBuyStart = 60
)

// PointBuy distributes a fixed pool of points across the eight attributes.
// Every score stays within [AttributeMin, AttributeMax]; profession focus is
// never applied here.
type PointBuy struct {
	attrs Attributes
}

// NewPointBuy returns a pool with every attribute at PointBuyStart.
func NewPointBuy() *PointBuy {
	p := &PointBuy{}
	for _, k := range ruleset.Attributes() {
		p.attrs = p.attrs.With(k, PointBuyStart)
	}
	return p
}

// Attributes returns the current allocation.
func (p *PointBuy) Attributes() Attributes {
	return p.attrs
}

// Used returns the points currently spent.
func (p *PointBuy) Used() int {
	return p.attrs.Total()
}

// Remaining returns the unspent points. It is never negative through Adjust.
func (p *PointBuy) Remaining() int {
	return PointBuyTotal - p.Used()
}

// Adjust moves key by delta, clamped to the attribute bounds. An increase
// that would overspend the pool is refused.
//
// Postcondition: Returns true when the allocation changed.
func (p *PointBuy) Adjust(key ruleset.Attribute, delta int) bool {
	if !key.Valid() || delta == 0 {
		return false
	}
	current := p.attrs.Get(key)
	next := p.attrs.With(key, clamp(current+delta, AttributeMin, AttributeMax))
	if delta > 0 && next.Total() > PointBuyTotal {
		return false
	}
	if next.Get(key) == current {
		return false
	}
	p.attrs = next
	return true
}

// CanIncrease reports whether key can be raised by one step.
func (p *PointBuy) CanIncrease(key ruleset.Attribute) bool {
	return p.attrs.Get(key) < AttributeMax && p.Remaining() >= AttributeStep
}

// CanDecrease reports whether key can be lowered by one step.
func (p *PointBuy) CanDecrease(key ruleset.Attribute) bool {
	return p.attrs.Get(key) > AttributeMin
}

// Complete reports whether the pool is spent exactly.
func (p *PointBuy) Complete() bool {
	return p.Remaining() == 0
}
