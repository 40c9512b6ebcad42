// Package export writes a one-way, human-readable snapshot of a derived
// character sheet. There is no import path.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/skill"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Document is the exported record.
type Document struct {
	ID             string          `json:"id" yaml:"id"`
	ExportedAt     time.Time       `json:"exportedAt" yaml:"exported_at"`
	ProfessionName string          `json:"professionName,omitempty" yaml:"profession_name,omitempty"`
	Character      character.Sheet `json:"character" yaml:"character"`
	Skills         []skill.Row     `json:"skills" yaml:"skills"`
	Remaining      skill.Balance   `json:"remaining" yaml:"remaining"`
}

// NewDocument stamps a snapshot with a fresh id and the given time.
func NewDocument(sheet character.Sheet, professionName string, rows []skill.Row, remaining skill.Balance, now time.Time) Document {
	if rows == nil {
		rows = []skill.Row{}
	}
	return Document{
		ID:             uuid.NewString(),
		ExportedAt:     now.UTC(),
		ProfessionName: professionName,
		Character:      sheet,
		Skills:         rows,
		Remaining:      remaining,
	}
}

// Encode writes doc to w in format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Filename returns "<name>_<YYYY-MM-DD>.<format>". A blank name uses
// placeholder. Path separators and characters most filesystems reject are
// replaced with underscores.
func Filename(name, placeholder string, format Format, now time.Time) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = placeholder
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, base)
	return fmt.Sprintf("%s_%s.%s", base, now.Format(time.DateOnly), format)
}

// WriteFile encodes doc into dir under Filename and returns the path written.
func WriteFile(dir string, doc Document, placeholder string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(doc.Character.Name, placeholder, format, doc.ExportedAt))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := Encode(f, doc, format); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}
