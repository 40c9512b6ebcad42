package ruleset

import (
	"strings"

	"go.uber.org/zap"
)

// Registry holds the read-only reference tables and answers lookups by id.
//
// A miss is never an error: lookups return (nil, false) and log the id at
// warn level so data-integrity gaps show up in diagnostics.
type Registry struct {
	professions     map[string]*Profession
	professionOrder []string
	skills          map[string]*Skill
	skillOrder      []string
	logger          *zap.Logger
}

// NewRegistry returns an empty Registry. A nil logger disables miss logging.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		professions: make(map[string]*Profession),
		skills:      make(map[string]*Skill),
		logger:      logger,
	}
}

// RegisterProfession adds p to the registry.
//
// Precondition: p must be non-nil with a non-empty ID.
// Postcondition: p is retrievable via Profession(p.ID). Re-registering an ID
// replaces the entry and keeps its original position.
func (r *Registry) RegisterProfession(p *Profession) {
	if p == nil {
		panic("Registry.RegisterProfession: precondition violated: profession must be non-nil")
	}
	if p.ID == "" {
		panic("Registry.RegisterProfession: precondition violated: profession ID must be non-empty")
	}
	if _, ok := r.professions[p.ID]; !ok {
		r.professionOrder = append(r.professionOrder, p.ID)
	}
	r.professions[p.ID] = p
}

// RegisterSkill adds s to the registry.
//
// Precondition: s must be non-nil with a non-empty ID.
// Postcondition: s is retrievable via Skill(s.ID); re-registration replaces in place.
func (r *Registry) RegisterSkill(s *Skill) {
	if s == nil {
		panic("Registry.RegisterSkill: precondition violated: skill must be non-nil")
	}
	if s.ID == "" {
		panic("Registry.RegisterSkill: precondition violated: skill ID must be non-empty")
	}
	if _, ok := r.skills[s.ID]; !ok {
		r.skillOrder = append(r.skillOrder, s.ID)
	}
	r.skills[s.ID] = s
}

// Profession returns the profession with the given id, if registered.
func (r *Registry) Profession(id string) (*Profession, bool) {
	p, ok := r.professions[id]
	if !ok && id != "" {
		r.logger.Warn("unknown reference id", zap.String("kind", "profession"), zap.String("id", id))
	}
	return p, ok
}

// Skill returns the skill with the given id, if registered.
func (r *Registry) Skill(id string) (*Skill, bool) {
	s, ok := r.skills[id]
	if !ok && id != "" {
		r.logger.Warn("unknown reference id", zap.String("kind", "skill"), zap.String("id", id))
	}
	return s, ok
}

// Professions returns every profession in registration order.
func (r *Registry) Professions() []*Profession {
	out := make([]*Profession, 0, len(r.professionOrder))
	for _, id := range r.professionOrder {
		out = append(out, r.professions[id])
	}
	return out
}

// Skills returns every skill in registration order.
func (r *Registry) Skills() []*Skill {
	out := make([]*Skill, 0, len(r.skillOrder))
	for _, id := range r.skillOrder {
		out = append(out, r.skills[id])
	}
	return out
}

// DefaultProfession returns the first registered profession, or nil when
// the table is empty.
func (r *Registry) DefaultProfession() *Profession {
	if len(r.professionOrder) == 0 {
		return nil
	}
	return r.professions[r.professionOrder[0]]
}

// SearchSkills filters skills by category (empty = all) and by a
// case-insensitive term matched against id, name and description.
//
// Postcondition: Result preserves registration order.
func (r *Registry) SearchSkills(term string, category Category) []*Skill {
	needle := strings.ToLower(strings.TrimSpace(term))
	var out []*Skill
	for _, s := range r.Skills() {
		if category != "" && s.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.ID), needle) &&
			!strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}
