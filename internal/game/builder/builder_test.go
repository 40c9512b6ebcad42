package builder_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/investigator/internal/game/builder"
	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
	"github.com/cory-johannsen/investigator/internal/game/skill"
	"github.com/cory-johannsen/investigator/internal/storage"
	"github.com/cory-johannsen/investigator/internal/storage/mocks"
)

const testKey = "coc-character-builder"

func makeRegistry() *ruleset.Registry {
	reg := ruleset.NewRegistry(nil)
	for _, s := range []*ruleset.Skill{
		{ID: "accounting", Name: "Accounting", Category: ruleset.CategoryKnowledge, Base: 5},
		{ID: "appraise", Name: "Appraise", Category: ruleset.CategoryInvestigation, Base: 5},
		{ID: "occult", Name: "Occult", Category: ruleset.CategoryKnowledge, Base: 5},
		{ID: "charm", Name: "Charm", Category: ruleset.CategorySocial, Base: 15},
		{ID: "cthulhu-mythos", Name: "Cthulhu Mythos", Category: ruleset.CategoryKnowledge, Base: 0},
	} {
		reg.RegisterSkill(s)
	}
	reg.RegisterProfession(&ruleset.Profession{
		ID:              "antique-dealer",
		Name:            "Antique Dealer",
		SignatureSkills: []string{"accounting", "appraise"},
		AttributeFocus:  map[ruleset.Attribute]int{ruleset.Appearance: 5},
		SkillFormulas: []ruleset.FormulaTerm{
			{Attribute: ruleset.Education, Multiplier: 2},
			{Attribute: ruleset.Appearance, Multiplier: 2},
		},
	})
	reg.RegisterProfession(&ruleset.Profession{
		ID:              "occultist",
		Name:            "Occultist",
		SignatureSkills: []string{"occult"},
		HPModifier:      -5,
	})
	return reg
}

func newMockBuilder(t *testing.T) (*builder.Builder, *mocks.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	b := builder.New(store, makeRegistry(), builder.Options{Key: testKey, DefaultName: "Unnamed Investigator"})
	return b, store
}

func decodeInput(t *testing.T, data []byte) character.Input {
	t.Helper()
	var in character.Input
	require.NoError(t, json.Unmarshal(data, &in))
	return in
}

func TestNew_Preconditions(t *testing.T) {
	reg := makeRegistry()
	mem := storage.NewMemory()
	assert.Panics(t, func() { builder.New(nil, reg, builder.Options{Key: testKey}) })
	assert.Panics(t, func() { builder.New(mem, nil, builder.Options{Key: testKey}) })
	assert.Panics(t, func() { builder.New(mem, reg, builder.Options{}) })
}

func TestOpen_NotFoundUsesDefault(t *testing.T) {
	b, store := newMockBuilder(t)
	store.EXPECT().Load(gomock.Any(), testKey).Return(nil, storage.ErrNotFound)

	require.NoError(t, b.Open(context.Background()))

	in := b.Input()
	assert.Equal(t, "Unnamed Investigator", in.Name)
	assert.Equal(t, "antique-dealer", in.ProfessionID)
	assert.Equal(t, character.DefaultAttributes(), in.Attributes)
	assert.Equal(t, 55, b.Sheet().Attributes.App, "focus applied to the default profession")
}

func TestOpen_CorruptPayloadUsesDefault(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	b := builder.New(store, makeRegistry(), builder.Options{Key: testKey, Logger: zap.New(core)})
	store.EXPECT().Load(gomock.Any(), testKey).Return([]byte("{not json"), nil)

	require.NoError(t, b.Open(context.Background()))
	assert.Equal(t, "antique-dealer", b.Input().ProfessionID)
	assert.Equal(t, 1, logs.FilterMessage("discarding unreadable saved character").Len())
}

func TestOpen_BackendErrorReturned(t *testing.T) {
	b, store := newMockBuilder(t)
	store.EXPECT().Load(gomock.Any(), testKey).Return(nil, errors.New("connection refused"))
	assert.Error(t, b.Open(context.Background()))
}

func TestOpen_HydratesSavedInput(t *testing.T) {
	b, store := newMockBuilder(t)
	saved := `{"name":"","professionId":"occultist","attributes":{"str":70,"con":0,"dex":63},"skills":{"occult":10,"charm":-4}}`
	store.EXPECT().Load(gomock.Any(), testKey).Return([]byte(saved), nil)

	require.NoError(t, b.Open(context.Background()))
	in := b.Input()
	assert.Equal(t, "Unnamed Investigator", in.Name)
	assert.Equal(t, "occultist", in.ProfessionID)
	assert.Equal(t, 70, in.Attributes.Str)
	assert.Equal(t, 55, in.Attributes.Con, "zero takes the default")
	assert.Equal(t, 65, in.Attributes.Dex, "normalized to a step of 5")
	assert.Equal(t, map[string]int{"occult": 10}, in.Skills)
}

func TestSelectProfession_UnknownRejectedWithoutSave(t *testing.T) {
	b, _ := newMockBuilder(t)
	err := b.SelectProfession(context.Background(), "astronaut")
	assert.ErrorIs(t, err, builder.ErrUnknownProfession)
	assert.Equal(t, "antique-dealer", b.Input().ProfessionID)
}

func TestSelectProfession_ClearsAllocationAndSaves(t *testing.T) {
	b, store := newMockBuilder(t)
	ctx := context.Background()

	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(nil)
	require.NoError(t, b.AdjustSkill(ctx, "accounting", 10))

	var saved []byte
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte) error {
			saved = data
			return nil
		})
	require.NoError(t, b.SelectProfession(ctx, "occultist"))

	in := decodeInput(t, saved)
	assert.Equal(t, "occultist", in.ProfessionID)
	assert.Empty(t, in.Skills)
	assert.Equal(t, 6, b.Sheet().SecondaryStats.HP, "(55+60)/10 - 5")
}

func TestSetAttribute_Normalizes(t *testing.T) {
	b, store := newMockBuilder(t)
	ctx := context.Background()
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, b.SetAttribute(ctx, ruleset.Education, 63))
	assert.Equal(t, 65, b.Input().Attributes.Edu)
	require.NoError(t, b.SetAttribute(ctx, ruleset.Strength, 200))
	assert.Equal(t, 90, b.Input().Attributes.Str)

	assert.ErrorIs(t, b.SetAttribute(ctx, "luck", 50), builder.ErrUnknownAttribute)
}

func TestSetAttributes_RecomputesSheet(t *testing.T) {
	b, store := newMockBuilder(t)
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(nil)

	attrs := character.Attributes{Str: 60, Con: 60, Dex: 60, Int: 60, Pow: 60, Siz: 60, App: 60, Edu: 65}
	require.NoError(t, b.SetAttributes(context.Background(), attrs))

	sheet := b.Sheet()
	assert.Equal(t, 65, sheet.Attributes.App)
	assert.Equal(t, 260, sheet.SkillBudget.Occupation)
	assert.Equal(t, 12, sheet.SecondaryStats.HP)
	assert.Equal(t, 60, sheet.SecondaryStats.SAN)
	assert.Equal(t, 8, sheet.SecondaryStats.MOV)
}

func TestAdjustSkill_RejectionsDoNotSave(t *testing.T) {
	b, _ := newMockBuilder(t)
	ctx := context.Background()

	assert.ErrorIs(t, b.AdjustSkill(ctx, "cthulhu-mythos", 1), skill.ErrNotAllocatable)
	assert.ErrorIs(t, b.AdjustSkill(ctx, "charm", 36), skill.ErrCeilingExceeded)
	assert.ErrorIs(t, b.AdjustSkill(ctx, "charm", 121), skill.ErrCeilingExceeded)
	assert.ErrorIs(t, b.AdjustSkill(ctx, "nope", 1), skill.ErrUnknownSkill)
	assert.Empty(t, b.Input().Skills)
}

func TestAdjustSkill_SaveFailureKeepsState(t *testing.T) {
	b, store := newMockBuilder(t)
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(errors.New("disk full"))

	err := b.AdjustSkill(context.Background(), "charm", 5)
	assert.Error(t, err)
	assert.Equal(t, 5, b.Input().Skills["charm"])
}

func TestStatus_CompletionGate(t *testing.T) {
	b, store := newMockBuilder(t)
	ctx := context.Background()
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(nil).AnyTimes()

	// Default attributes: edu 65, app 55 after focus, int 60.
	st := b.Status()
	assert.Equal(t, character.SkillBudget{Occupation: 240, Personal: 120}, st.Budget)
	assert.False(t, st.Complete)

	require.NoError(t, b.AdjustSkill(ctx, "accounting", 75))
	require.NoError(t, b.AdjustSkill(ctx, "appraise", 75))
	require.NoError(t, b.AdjustSkill(ctx, "occult", 45))
	require.NoError(t, b.AdjustSkill(ctx, "charm", 35))
	assert.False(t, b.Status().Complete)

	// Lowering education shrinks the occupation budget under the allocation.
	require.NoError(t, b.SetAttribute(ctx, ruleset.Education, 15))
	st = b.Status()
	assert.True(t, st.OverBudget)
	assert.False(t, st.Complete)

	require.NoError(t, b.SetAttribute(ctx, ruleset.Education, 65))
	require.NoError(t, b.ResetSkills(ctx))
	assert.Equal(t, skill.Balance{Occupation: 240, Personal: 120}, b.Status().Remaining)
}

func TestReset(t *testing.T) {
	b, store := newMockBuilder(t)
	ctx := context.Background()
	store.EXPECT().Save(gomock.Any(), testKey, gomock.Any()).Return(nil)
	store.EXPECT().Delete(gomock.Any(), testKey).Return(nil)

	require.NoError(t, b.Rename(ctx, "Harvey"))
	require.NoError(t, b.Reset(ctx))
	assert.Equal(t, "Unnamed Investigator", b.Input().Name)
}

func TestRows(t *testing.T) {
	b, _ := newMockBuilder(t)
	occ := b.OccupationRows()
	require.Len(t, occ, 2)
	assert.Equal(t, "accounting", occ[0].Skill.ID)
	assert.Equal(t, 80, occ[0].Ceiling)

	personal := b.PersonalRows()
	var ids []string
	for _, r := range personal {
		ids = append(ids, r.Skill.ID)
	}
	assert.Equal(t, []string{"occult", "charm"}, ids)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	reg := makeRegistry()
	opts := builder.Options{Key: testKey, DefaultName: "x"}

	first := builder.New(store, reg, opts)
	require.NoError(t, first.Open(ctx))
	require.NoError(t, first.Rename(ctx, "Harvey"))
	require.NoError(t, first.SelectProfession(ctx, "occultist"))
	require.NoError(t, first.AdjustSkill(ctx, "occult", 20))

	second := builder.New(store, reg, opts)
	require.NoError(t, second.Open(ctx))
	assert.Equal(t, first.Input(), second.Input())
	assert.Equal(t, first.Sheet(), second.Sheet())
}

// Property: whatever adjustments are attempted, the builder never lets a
// bucket go negative while attributes are unchanged.
func TestProperty_AdjustSkill_NeverOverspends(t *testing.T) {
	skillIDs := []string{"accounting", "appraise", "occult", "charm", "cthulhu-mythos"}
	rapid.Check(t, func(rt *rapid.T) {
		b := builder.New(storage.NewMemory(), makeRegistry(), builder.Options{Key: testKey})
		ctx := context.Background()
		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(skillIDs).Draw(rt, "skill")
			delta := rapid.SampledFrom([]int{-10, -1, 1, 10, 25}).Draw(rt, "delta")
			_ = b.AdjustSkill(ctx, id, delta)
			if st := b.Status(); st.OverBudget {
				rt.Fatalf("over budget after %s %+d: %+v", id, delta, st.Remaining)
			}
		}
	})
}
