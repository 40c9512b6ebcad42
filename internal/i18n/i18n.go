// Package i18n holds the display label tables and picks one for a
// requested locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// FallbackLocale is used when nothing better matches and fills any label a
// catalog leaves out.
const FallbackLocale = "en-US"

// Catalog is the label table for one locale.
type Catalog struct {
	Tag             string            `yaml:"tag"`
	Attributes      map[string]string `yaml:"attributes"`
	SecondaryLabels map[string]string `yaml:"secondary"`
	Categories      map[string]string `yaml:"categories"`
	Texts           map[string]string `yaml:"text"`

	fallback *Catalog
}

// Attribute returns the display name of a, falling back to its abbreviation.
func (c *Catalog) Attribute(a ruleset.Attribute) string {
	return c.lookup(func(k *Catalog) map[string]string { return k.Attributes }, string(a), a.Abbrev())
}

// Secondary returns the display name of a secondary stat key such as "hp".
func (c *Catalog) Secondary(key string) string {
	return c.lookup(func(k *Catalog) map[string]string { return k.SecondaryLabels }, key, strings.ToUpper(key))
}

// Category returns the display name of a skill category.
func (c *Catalog) Category(cat ruleset.Category) string {
	return c.lookup(func(k *Catalog) map[string]string { return k.Categories }, string(cat), string(cat))
}

// Text returns the UI string for key with every {{name}} placeholder
// replaced from args, given as name/value pairs. Unknown keys return key.
func (c *Catalog) Text(key string, args ...string) string {
	s := c.lookup(func(k *Catalog) map[string]string { return k.Texts }, key, key)
	for i := 0; i+1 < len(args); i += 2 {
		s = strings.ReplaceAll(s, "{{"+args[i]+"}}", args[i+1])
	}
	return s
}

func (c *Catalog) lookup(table func(*Catalog) map[string]string, key, def string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if v, ok := table(cat)[key]; ok && v != "" {
			return v
		}
	}
	return def
}

// Bundle is the set of loaded catalogs.
type Bundle struct {
	catalogs []*Catalog
	tags     []language.Tag
	matcher  language.Matcher
}

// LoadDefault loads the catalogs compiled into the binary.
func LoadDefault() (*Bundle, error) {
	return LoadFS(embeddedLocales, "locales")
}

// LoadFS loads every *.yaml catalog under dir. One catalog must be tagged
// FallbackLocale.
//
// Postcondition: Returns a Bundle with at least one catalog or a non-nil error.
func LoadFS(fsys fs.FS, dir string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading locale dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var fallback *Catalog
	var others []*Catalog
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var cat Catalog
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if _, err := language.Parse(cat.Tag); err != nil {
			return nil, fmt.Errorf("%s: invalid tag %q: %w", name, cat.Tag, err)
		}
		if cat.Tag == FallbackLocale {
			fallback = &cat
			continue
		}
		others = append(others, &cat)
	}
	if fallback == nil {
		return nil, fmt.Errorf("no %s catalog in %q", FallbackLocale, dir)
	}

	b := &Bundle{catalogs: []*Catalog{fallback}, tags: []language.Tag{language.MustParse(fallback.Tag)}}
	for _, cat := range others {
		cat.fallback = fallback
		b.catalogs = append(b.catalogs, cat)
		b.tags = append(b.tags, language.MustParse(cat.Tag))
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Match returns the catalog best matching locale, a BCP 47 tag or an
// Accept-Language style list. Unparseable or unmatched input gets the
// fallback catalog.
func (b *Bundle) Match(locale string) *Catalog {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return b.catalogs[0]
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.catalogs[0]
	}
	return b.catalogs[idx]
}

// Locales returns the loaded locale tags, fallback first.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.catalogs))
	for _, c := range b.catalogs {
		out = append(out, c.Tag)
	}
	return out
}
