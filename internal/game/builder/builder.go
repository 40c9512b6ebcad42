// Package builder owns the mutable character state: the user input and the
// sheet derived from it. Every successful change recomputes the sheet and
// saves the input.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/investigator/internal/game/character"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
	"github.com/cory-johannsen/investigator/internal/game/skill"
	"github.com/cory-johannsen/investigator/internal/storage"
)

var (
	// ErrUnknownProfession is returned when selecting a profession id the
	// registry does not hold.
	ErrUnknownProfession = errors.New("unknown profession")
	// ErrUnknownAttribute is returned for an attribute key outside the eight.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Options configures a Builder.
type Options struct {
	// Key is the storage key the input is saved under.
	Key string
	// DefaultName names a fresh character.
	DefaultName string
	// Logger receives transition and persistence logs. Nil disables logging.
	Logger *zap.Logger
}

// Status summarises the skill allocation against the current budgets.
type Status struct {
	Budget     character.SkillBudget `json:"budget"`
	Remaining  skill.Balance         `json:"remaining"`
	OverBudget bool                  `json:"overBudget"`
	Complete   bool                  `json:"complete"`
}

// Builder is the explicit state container for one character. Safe for
// concurrent use.
type Builder struct {
	store       storage.Store
	key         string
	defaultName string
	registry    *ruleset.Registry
	calc        *character.Calculator
	engine      *skill.Engine
	logger      *zap.Logger

	mu    sync.Mutex
	input character.Input
	sheet character.Sheet
}

// New returns a Builder holding a default character. Call Open to load the
// saved one.
//
// Precondition: store and registry must be non-nil; opts.Key must be non-empty.
func New(store storage.Store, registry *ruleset.Registry, opts Options) *Builder {
	if store == nil {
		panic("builder.New: precondition violated: store must be non-nil")
	}
	if registry == nil {
		panic("builder.New: precondition violated: registry must be non-nil")
	}
	if opts.Key == "" {
		panic("builder.New: precondition violated: key must be non-empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{
		store:       store,
		key:         opts.Key,
		defaultName: opts.DefaultName,
		registry:    registry,
		calc:        character.NewCalculator(registry),
		engine:      skill.NewEngine(registry),
		logger:      logger,
	}
	b.input = b.defaultInput()
	b.recompute()
	return b
}

func (b *Builder) defaultInput() character.Input {
	in := character.Input{
		Name:       b.defaultName,
		Attributes: character.DefaultAttributes(),
	}
	if p := b.registry.DefaultProfession(); p != nil {
		in.ProfessionID = p.ID
	}
	return in
}

// Open loads the saved input. A missing or undecodable record leaves the
// default character in place. Only backend failures are returned.
func (b *Builder) Open(ctx context.Context) error {
	data, err := b.store.Load(ctx, b.key)
	b.mu.Lock()
	defer b.mu.Unlock()

	if errors.Is(err, storage.ErrNotFound) {
		b.logger.Debug("no saved character, using default", zap.String("key", b.key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading character: %w", err)
	}

	var in character.Input
	if err := json.Unmarshal(data, &in); err != nil {
		b.logger.Warn("discarding unreadable saved character",
			zap.String("key", b.key),
			zap.Error(err),
		)
		return nil
	}
	b.input = b.hydrate(in)
	b.recompute()
	b.logger.Debug("character loaded",
		zap.String("name", b.input.Name),
		zap.String("profession", b.input.ProfessionID),
	)
	return nil
}

// hydrate fills gaps in a loaded input: blank name and profession take the
// defaults, zero attributes take default scores, every score is normalized,
// and non-positive allocations are dropped.
func (b *Builder) hydrate(in character.Input) character.Input {
	def := b.defaultInput()
	if in.Name == "" {
		in.Name = def.Name
	}
	if in.ProfessionID == "" {
		in.ProfessionID = def.ProfessionID
	}
	in.Attributes = in.Attributes.WithDefaults().Normalized()
	alloc := skill.Allocation{}
	for id, pts := range in.Skills {
		if pts > 0 {
			alloc[id] = pts
		}
	}
	in.Skills = alloc
	return in
}

func (b *Builder) profession() *ruleset.Profession {
	p, _ := b.registry.Profession(b.input.ProfessionID)
	return p
}

func (b *Builder) allocation() skill.Allocation {
	return skill.Allocation(b.input.Skills)
}

func (b *Builder) recompute() {
	b.sheet = b.calc.Calculate(b.input, b.profession())
}

// commit installs next, recomputes and saves. A failed save is returned but
// the new state is kept.
func (b *Builder) commit(ctx context.Context, op string, next character.Input) error {
	b.input = next
	b.recompute()
	b.logger.Debug("character updated", zap.String("op", op))

	data, err := json.Marshal(b.input)
	if err != nil {
		return fmt.Errorf("encoding character: %w", err)
	}
	if err := b.store.Save(ctx, b.key, data); err != nil {
		b.logger.Error("saving character", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

func (b *Builder) cloneInput() character.Input {
	in := b.input
	in.Skills = skill.Allocation(b.input.Skills).Clone()
	return in
}

// Input returns a copy of the current input.
func (b *Builder) Input() character.Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cloneInput()
}

// Sheet returns the current derived sheet.
func (b *Builder) Sheet() character.Sheet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sheet
}

// Profession returns the selected profession, or nil when its id is unknown.
func (b *Builder) Profession() *ruleset.Profession {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profession()
}

// Rename sets the character name.
func (b *Builder) Rename(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.cloneInput()
	next.Name = name
	return b.commit(ctx, "rename", next)
}

// SelectProfession switches profession. The skill allocation is cleared
// because bucket membership and ceilings change with the profession.
func (b *Builder) SelectProfession(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.registry.Profession(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfession, id)
	}
	next := b.cloneInput()
	next.ProfessionID = id
	next.Skills = skill.Allocation{}
	return b.commit(ctx, "select_profession", next)
}

// SetAttribute sets one base attribute after normalizing value into
// [15, 90] on a step of 5.
func (b *Builder) SetAttribute(ctx context.Context, key ruleset.Attribute, value int) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.cloneInput()
	next.Attributes = next.Attributes.With(key, character.NormalizeAttribute(value))
	return b.commit(ctx, "set_attribute", next)
}

// SetAttributes replaces all base attributes, normalizing each.
func (b *Builder) SetAttributes(ctx context.Context, attrs character.Attributes) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.cloneInput()
	next.Attributes = attrs.Normalized()
	return b.commit(ctx, "set_attributes", next)
}

// AdjustSkill moves the points on skillID by delta through the allocation
// engine. A rejected adjustment leaves state untouched and returns one of the
// skill package's sentinel errors.
func (b *Builder) AdjustSkill(ctx context.Context, skillID string, delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	alloc, err := b.engine.Adjust(skillID, delta, b.sheet.Attributes, b.allocation(), b.profession(), b.sheet.SkillBudget)
	if err != nil {
		b.logger.Debug("skill adjustment rejected",
			zap.String("skill", skillID),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		return err
	}
	next := b.cloneInput()
	next.Skills = alloc
	return b.commit(ctx, "adjust_skill", next)
}

// ResetSkills clears the allocation.
func (b *Builder) ResetSkills(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.cloneInput()
	next.Skills = skill.Allocation{}
	return b.commit(ctx, "reset_skills", next)
}

// Reset deletes the saved record and returns to the default character.
func (b *Builder) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.store.Delete(ctx, b.key); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	b.input = b.defaultInput()
	b.recompute()
	b.logger.Debug("character reset")
	return nil
}

// Status reports remaining budgets and the completion gate.
func (b *Builder) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	remaining := b.engine.Remaining(b.allocation(), b.profession(), b.sheet.SkillBudget)
	return Status{
		Budget:     b.sheet.SkillBudget,
		Remaining:  remaining,
		OverBudget: remaining.OverBudget(),
		Complete:   remaining.Complete(),
	}
}

// OccupationRows returns display rows for the signature skills.
func (b *Builder) OccupationRows() []skill.Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	prof := b.profession()
	return b.engine.Rows(b.engine.OccupationSkills(prof), b.sheet.Attributes, b.allocation(), prof, b.sheet.SkillBudget)
}

// PersonalRows returns display rows for the remaining allocatable skills.
func (b *Builder) PersonalRows() []skill.Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	prof := b.profession()
	return b.engine.Rows(b.engine.PersonalSkills(prof), b.sheet.Attributes, b.allocation(), prof, b.sheet.SkillBudget)
}
