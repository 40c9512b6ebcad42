package ruleset

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// skillFile is the on-disk shape of a skill table: one category per file.
// A skill may override the file category with its own.
type skillFile struct {
	Category Category `yaml:"category"`
	Skills   []*Skill `yaml:"skills"`
}

// LoadProfessions reads all .yaml files in dir and parses each as a Profession.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed professions in file-name order (may be
// empty) or a non-nil error.
func LoadProfessions(dir string) ([]*Profession, error) {
	return LoadProfessionsFS(os.DirFS(dir), ".")
}

// LoadProfessionsFS is LoadProfessions over an fs.FS.
func LoadProfessionsFS(fsys fs.FS, dir string) ([]*Profession, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	professions := make([]*Profession, 0, len(files))
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var prof Profession
		if err := yaml.Unmarshal(data, &prof); err != nil {
			return nil, fmt.Errorf("parsing profession file %s: %w", p, err)
		}
		if err := prof.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profession file %s: %w", p, err)
		}
		professions = append(professions, &prof)
	}
	return professions, nil
}

// LoadSkills reads all .yaml files in dir and parses each as a skill table.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed skills in file-then-declaration order or
// a non-nil error.
func LoadSkills(dir string) ([]*Skill, error) {
	return LoadSkillsFS(os.DirFS(dir), ".")
}

// LoadSkillsFS is LoadSkills over an fs.FS.
func LoadSkillsFS(fsys fs.FS, dir string) ([]*Skill, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	var skills []*Skill
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var sf skillFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parsing skill file %s: %w", p, err)
		}
		for _, s := range sf.Skills {
			if s == nil {
				continue
			}
			if s.Category == "" {
				s.Category = sf.Category
			}
			if err := s.Validate(); err != nil {
				return nil, fmt.Errorf("invalid skill in %s: %w", p, err)
			}
			skills = append(skills, s)
		}
	}
	return skills, nil
}

func yamlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}
