package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed content
var embeddedContent embed.FS

// LoadDefault builds a Registry from the reference tables compiled into the
// binary.
func LoadDefault(logger *zap.Logger) (*Registry, error) {
	sub, err := fs.Sub(embeddedContent, "content")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return LoadFS(sub, logger)
}

// Load builds a Registry from a content directory laid out as
// <dir>/professions/*.yaml and <dir>/skills/*.yaml.
func Load(dir string, logger *zap.Logger) (*Registry, error) {
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS reads the profession and skill tables concurrently and registers
// them. Duplicate ids are an error; signature skills that name no loaded
// skill are logged and kept.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadFS(fsys fs.FS, logger *zap.Logger) (*Registry, error) {
	var (
		professions []*Profession
		skills      []*Skill
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		professions, err = LoadProfessionsFS(fsys, "professions")
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = LoadSkillsFS(fsys, "skills")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg := NewRegistry(logger)
	for _, s := range skills {
		if _, dup := reg.skills[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", s.ID)
		}
		reg.RegisterSkill(s)
	}
	for _, p := range professions {
		if _, dup := reg.professions[p.ID]; dup {
			return nil, fmt.Errorf("duplicate profession id %q", p.ID)
		}
		reg.RegisterProfession(p)
		for _, id := range p.SignatureSkills {
			if _, ok := reg.skills[id]; !ok {
				reg.logger.Warn("profession references unknown skill",
					zap.String("profession", p.ID),
					zap.String("skill", id),
				)
			}
		}
	}
	reg.logger.Debug("ruleset loaded",
		zap.Int("professions", len(professions)),
		zap.Int("skills", len(skills)),
	)
	return reg, nil
}
