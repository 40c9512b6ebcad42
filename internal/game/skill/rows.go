package skill

import (
	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

// Row is the display view of one skill under an allocation.
type Row struct {
	Skill       *ruleset.Skill      `json:"skill" yaml:"skill"`
	Bucket      Bucket              `json:"bucket" yaml:"bucket"`
	Initial     int                 `json:"initial" yaml:"initial"`
	Allocated   int                 `json:"allocated" yaml:"allocated"`
	Current     int                 `json:"current" yaml:"current"`
	Ceiling     int                 `json:"ceiling" yaml:"ceiling"`
	Threshold   character.Threshold `json:"threshold" yaml:"threshold"`
	CanIncrease bool                `json:"canIncrease" yaml:"can_increase"`
	CanDecrease bool                `json:"canDecrease" yaml:"can_decrease"`
}

// Group is the rows of one category.
type Group struct {
	Category ruleset.Category `json:"category" yaml:"category"`
	Rows     []Row            `json:"rows" yaml:"rows"`
}

// Rows builds a Row for every skill in list. CanIncrease means a one-point
// increase would pass validation and fit in the bucket's remaining budget.
func (e *Engine) Rows(list []*ruleset.Skill, attrs character.Attributes, alloc Allocation, prof *ruleset.Profession, budget character.SkillBudget) []Row {
	remaining := e.Remaining(alloc, prof, budget)
	rows := make([]Row, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		allocated := alloc.Points(s.ID)
		bucket := BucketFor(s.ID, prof)
		current := e.CurrentValue(s.ID, attrs, alloc)
		canIncrease := e.Validate(s.ID, allocated+1, attrs, alloc, prof) == nil &&
			remaining.Get(bucket) >= 1
		rows = append(rows, Row{
			Skill:       s,
			Bucket:      bucket,
			Initial:     e.InitialValue(s.ID, attrs),
			Allocated:   allocated,
			Current:     current,
			Ceiling:     Ceiling(s.ID, prof),
			Threshold:   character.ThresholdFor(current),
			CanIncrease: canIncrease,
			CanDecrease: CanAllocate(s.ID) && allocated > 0,
		})
	}
	return rows
}

// GroupByCategory groups rows in category display order. Empty categories
// are omitted and rows keep their relative order.
func GroupByCategory(rows []Row) []Group {
	byCategory := make(map[ruleset.Category][]Row)
	for _, r := range rows {
		byCategory[r.Skill.Category] = append(byCategory[r.Skill.Category], r)
	}
	var out []Group
	for _, c := range ruleset.Categories() {
		if rs := byCategory[c]; len(rs) > 0 {
			out = append(out, Group{Category: c, Rows: rs})
		}
	}
	return out
}
