package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadProfessions_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "antique-dealer.yaml"), `
id: antique-dealer
name: "Antique Dealer"
description: "Knows artefacts."
signature_skills: [accounting, appraise]
attribute_focus:
  APP: 5
  intelligence: 5
hp_modifier: -1
skill_formulas:
  - { attribute: edu, multiplier: 2 }
  - { attribute: app, multiplier: 1.5 }
`)
	profs, err := ruleset.LoadProfessions(dir)
	require.NoError(t, err)
	require.Len(t, profs, 1)

	p := profs[0]
	assert.Equal(t, "antique-dealer", p.ID)
	assert.Equal(t, "Antique Dealer", p.Name)
	assert.Equal(t, []string{"accounting", "appraise"}, p.SignatureSkills)
	assert.Equal(t, 5, p.AttributeFocus[ruleset.Appearance])
	assert.Equal(t, 5, p.AttributeFocus[ruleset.Intelligence])
	assert.Equal(t, -1, p.HPModifier)
	require.Len(t, p.SkillFormulas, 2)
	assert.Equal(t, ruleset.FormulaTerm{Attribute: ruleset.Education, Multiplier: 2}, p.SkillFormulas[0])
	assert.Equal(t, 1.5, p.SkillFormulas[1].Multiplier)
}

func TestLoadProfessions_UnknownAttributeRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
id: bad
name: Bad
attribute_focus:
  luck: 5
`)
	_, err := ruleset.LoadProfessions(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadProfessions_MissingNameRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nameless.yaml"), "id: nameless\n")
	_, err := ruleset.LoadProfessions(dir)
	require.Error(t, err)
}

func TestLoadProfessions_EmptyDir(t *testing.T) {
	profs, err := ruleset.LoadProfessions(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, profs)
}

func TestLoadProfessions_MissingDir(t *testing.T) {
	_, err := ruleset.LoadProfessions(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadSkills_InheritsFileCategory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "combat.yaml"), `
category: combat
skills:
  - { id: dodge, name: Dodge, base: 0 }
  - { id: throw, name: Throw, base: 20, category: survival }
`)
	writeFile(t, filepath.Join(dir, "README.txt"), "ignored")
	skills, err := ruleset.LoadSkills(dir)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, ruleset.CategoryCombat, skills[0].Category)
	assert.Equal(t, ruleset.CategorySurvival, skills[1].Category)
	assert.Equal(t, 20, skills[1].Base)
}

func TestLoadSkills_UnknownCategoryRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
category: sorcery
skills:
  - { id: hex, name: Hex, base: 1 }
`)
	_, err := ruleset.LoadSkills(dir)
	require.Error(t, err)
}

func TestLoad_DuplicateSkillRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "professions", "p.yaml"), "id: p\nname: P\n")
	writeFile(t, filepath.Join(dir, "skills", "a.yaml"), "category: knowledge\nskills:\n  - { id: law, name: Law, base: 5 }\n")
	writeFile(t, filepath.Join(dir, "skills", "b.yaml"), "category: social\nskills:\n  - { id: law, name: Law, base: 5 }\n")
	_, err := ruleset.Load(dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "law")
}

func TestLoad_UnknownSignatureSkillIsKept(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "professions", "p.yaml"), "id: p\nname: P\nsignature_skills: [law, ghost]\n")
	writeFile(t, filepath.Join(dir, "skills", "a.yaml"), "category: knowledge\nskills:\n  - { id: law, name: Law, base: 5 }\n")
	reg, err := ruleset.Load(dir, nil)
	require.NoError(t, err)
	p, ok := reg.Profession("p")
	require.True(t, ok)
	assert.Equal(t, []string{"law", "ghost"}, p.SignatureSkills)
}

func TestLoadDefault_EmbeddedContent(t *testing.T) {
	reg, err := ruleset.LoadDefault(nil)
	require.NoError(t, err)

	require.NotEmpty(t, reg.Professions())
	assert.Equal(t, "antique-dealer", reg.DefaultProfession().ID)

	for _, id := range []string{"dodge", "language-native", "cthulhu-mythos"} {
		_, ok := reg.Skill(id)
		assert.True(t, ok, "embedded skills must include %q", id)
	}
	// Every embedded signature skill resolves.
	for _, p := range reg.Professions() {
		for _, id := range p.SignatureSkills {
			_, ok := reg.Skill(id)
			assert.True(t, ok, "profession %q references missing skill %q", p.ID, id)
		}
	}
	// Every category has at least one skill.
	for _, c := range ruleset.Categories() {
		assert.NotEmpty(t, reg.SearchSkills("", c), "category %q is empty", c)
	}
}
