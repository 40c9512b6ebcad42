package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
	"github.com/cory-johannsen/investigator/internal/game/skill"
)

func TestRows(t *testing.T) {
	reg := makeRegistry()
	e := skill.NewEngine(reg)
	prof := makeProfession()
	alloc := skill.Allocation{"occult": 55, "charm": 5}
	budget := character.SkillBudget{Occupation: 100, Personal: 5}

	rows := e.Rows(reg.Skills(), attrs(), alloc, prof, budget)
	require.Len(t, rows, 8)
	byID := make(map[string]skill.Row)
	for _, r := range rows {
		byID[r.Skill.ID] = r
	}

	occult := byID["occult"]
	assert.Equal(t, skill.BucketOccupation, occult.Bucket)
	assert.Equal(t, 25, occult.Initial)
	assert.Equal(t, 80, occult.Current)
	assert.Equal(t, 80, occult.Ceiling)
	assert.Equal(t, character.Threshold{Regular: 80, Hard: 40, Extreme: 16}, occult.Threshold)
	assert.False(t, occult.CanIncrease, "at ceiling")
	assert.True(t, occult.CanDecrease)

	charm := byID["charm"]
	assert.Equal(t, skill.BucketPersonal, charm.Bucket)
	assert.False(t, charm.CanIncrease, "personal budget spent")
	assert.True(t, charm.CanDecrease)

	library := byID["library-use"]
	assert.True(t, library.CanIncrease)
	assert.False(t, library.CanDecrease)

	mythos := byID[skill.SkillCthulhuMythos]
	assert.False(t, mythos.CanIncrease)
	assert.False(t, mythos.CanDecrease)
}

func TestGroupByCategory(t *testing.T) {
	reg := makeRegistry()
	e := skill.NewEngine(reg)
	groups := skill.GroupByCategory(e.Rows(e.PersonalSkills(makeProfession()), attrs(), nil, makeProfession(), character.SkillBudget{}))

	var cats []ruleset.Category
	for _, g := range groups {
		cats = append(cats, g.Category)
	}
	assert.Equal(t, []ruleset.Category{
		ruleset.CategoryKnowledge, ruleset.CategorySocial, ruleset.CategoryCombat, ruleset.CategoryMedical,
	}, cats)
	require.Len(t, groups[0].Rows, 1)
	assert.Equal(t, "language-native", groups[0].Rows[0].Skill.ID)
}

func TestGroupByCategory_Empty(t *testing.T) {
	assert.Empty(t, skill.GroupByCategory(nil))
}
