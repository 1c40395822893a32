package effects

import (
	"errors"
	"log"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
	"github.com/KirkDiggler/gameplay-effects/internal/uuid"
)

// TickSize is the time one Tick advances every active effect by
const TickSize = 1.0

// CharacterConfig holds the dependencies of a Character
type CharacterConfig struct {
	ID          string
	Level       float64
	Store       attributes.Store
	EventBus    events.Bus
	IDGenerator uuid.Generator
}

// Character owns an attribute store and the effects active on it.
// A Character is not safe for concurrent use; callers serialize apply and
// tick per character.
type Character struct {
	id          string
	level       float64
	store       attributes.Store
	eventBus    events.Bus
	idGenerator uuid.Generator
	aggregator  Aggregator

	active []*ActiveEffect
}

// NewCharacter creates a character from its config
func NewCharacter(cfg *CharacterConfig) (*Character, error) {
	if cfg == nil {
		return nil, engineerr.InvalidArgument("character config is required")
	}
	if cfg.ID == "" {
		return nil, engineerr.InvalidArgument("character ID is required")
	}
	if cfg.Store == nil {
		return nil, engineerr.InvalidArgument("attribute store is required").
			WithMeta("character_id", cfg.ID)
	}

	idGenerator := cfg.IDGenerator
	if idGenerator == nil {
		idGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &Character{
		id:          cfg.ID,
		level:       cfg.Level,
		store:       cfg.Store,
		eventBus:    cfg.EventBus,
		idGenerator: idGenerator,
	}, nil
}

// ID returns the character ID
func (c *Character) ID() string { return c.id }

// Level returns the character level used for outgoing specs
func (c *Character) Level() float64 { return c.level }

// SetLevel changes the level used for future outgoing specs
func (c *Character) SetLevel(level float64) { c.level = level }

// Attributes returns the attribute store of the character
func (c *Character) Attributes() attributes.Store { return c.store }

// MakeOutgoingSpec creates a spec sourced by this character at its own level
func (c *Character) MakeOutgoingSpec(def *Definition) (*Spec, error) {
	return NewSpec(def, c, c.level)
}

// MakeOutgoingSpecAtLevel creates a spec sourced by this character at level
func (c *Character) MakeOutgoingSpecAtLevel(def *Definition, level float64) (*Spec, error) {
	return NewSpec(def, c, level)
}

// GrantedTags returns the union of tags granted by every active effect
func (c *Character) GrantedTags() tags.Set {
	granted := tags.NewSet()
	for _, entry := range c.active {
		for _, tag := range entry.Spec.Definition().GrantedTags {
			granted.Add(tag)
		}
	}
	return granted
}

// CanApply reports whether the spec passes the tag requirements of its
// definition against the tags currently granted on this character
func (c *Character) CanApply(spec *Spec) bool {
	_, ok := c.checkRequirements(spec)
	return ok
}

func (c *Character) checkRequirements(spec *Spec) (string, bool) {
	req := spec.Definition().ApplicationRequirements
	granted := c.GrantedTags()

	for _, tag := range req.Require {
		if !granted.Contains(tag) {
			return "missing required tag " + tag.Name(), false
		}
	}
	for _, tag := range req.Ignore {
		if granted.Contains(tag) {
			return "blocked by tag " + tag.Name(), false
		}
	}

	return "", true
}

// ApplyToSelf applies a spec to this character. It returns false without
// an error when the tag requirements reject the spec. Instant specs change
// base values directly; other specs are tracked until they expire or are
// removed.
func (c *Character) ApplyToSelf(spec *Spec) (bool, error) {
	if spec == nil {
		return true, nil
	}

	def := spec.Definition()
	if reason, ok := c.checkRequirements(spec); !ok {
		log.Printf("[EFFECTS] %s rejected %s: %s", c.id, def.Name, reason)
		c.emit(c.effectEvent(events.OnEffectRejected, spec, "").
			WithContext(events.ContextRejectionReason, reason))
		return false, nil
	}

	if def.DurationPolicy == DurationInstant {
		if err := c.execute(spec); err != nil {
			log.Printf("[EFFECTS] %s failed to execute %s: %v", c.id, def.Name, err)
			return true, err
		}
		c.emit(c.effectEvent(events.OnEffectApplied, spec, ""))
		return true, nil
	}

	entry := newActiveEffect(c.idGenerator.New(), spec)
	c.active = append(c.active, entry)
	c.Recompute()

	c.emit(c.effectEvent(events.OnEffectApplied, spec, entry.ID))
	return true, nil
}

// execute applies every modifier of the spec to base values
func (c *Character) execute(spec *Spec) error {
	for _, mod := range spec.Definition().Modifiers {
		magnitude := resolveMagnitude(mod, spec)

		value, err := c.store.GetValue(mod.Attribute)
		if err != nil {
			return err
		}

		next := attributes.Modifier{Operator: mod.Operator, Value: magnitude}.ApplyTo(value.Base)
		if err := c.store.SetBaseValue(mod.Attribute, next); err != nil {
			return err
		}
	}
	return nil
}

// Recompute rebuilds every current value from base values and the
// contributions of active effects
func (c *Character) Recompute() {
	c.store.ResetModifiers()
	c.aggregator.Aggregate(c.store, c.active)
	c.store.RecomputeCurrentValues()
}

// Tick advances every active effect by TickSize, runs due periodic
// executions and removes expired effects. Periodic execution errors are
// joined and returned after the sweep. Events are emitted once current
// values have been recomputed.
func (c *Character) Tick() error {
	var errs []error
	var executed []*ActiveEffect
	changed := false

	entries := append([]*ActiveEffect(nil), c.active...)
	for _, entry := range entries {
		spec := entry.Spec
		if spec.Definition().DurationPolicy == DurationInstant {
			continue
		}

		spec.UpdateRemainingDuration(TickSize)
		if !spec.TickPeriodic(TickSize) {
			continue
		}

		changed = true
		if err := c.execute(spec); err != nil {
			errs = append(errs, engineerr.Wrapf(err, "periodic execution of %s failed", spec.Definition().Name))
			continue
		}
		executed = append(executed, entry)
	}

	kept := c.active[:0]
	var expired []*ActiveEffect
	for _, entry := range c.active {
		if entry.Spec.IsExpired() {
			expired = append(expired, entry)
			continue
		}
		kept = append(kept, entry)
	}
	clearTail(c.active, len(kept))
	c.active = kept

	if len(expired) > 0 {
		changed = true
	}
	if changed {
		c.Recompute()
	}

	for _, entry := range executed {
		c.emit(c.effectEvent(events.OnPeriodicExecuted, entry.Spec, entry.ID))
	}
	for _, entry := range expired {
		log.Printf("[EFFECTS] %s expired on %s", entry.Name(), c.id)
		c.emit(c.effectEvent(events.OnEffectExpired, entry.Spec, entry.ID))
	}

	return errors.Join(errs...)
}

// RemoveEffect removes one active effect by ID
func (c *Character) RemoveEffect(id string) bool {
	for i, entry := range c.active {
		if entry.ID != id {
			continue
		}

		kept := make([]*ActiveEffect, 0, len(c.active)-1)
		kept = append(kept, c.active[:i]...)
		c.active = append(kept, c.active[i+1:]...)
		c.Recompute()

		log.Printf("[EFFECTS] Removed %s (%s) from %s", entry.Name(), id, c.id)
		c.emit(c.effectEvent(events.OnEffectRemoved, entry.Spec, entry.ID))
		return true
	}
	return false
}

// RemoveEffectsWithGrantedTag removes every active effect whose definition
// grants tag and returns how many were removed
func (c *Character) RemoveEffectsWithGrantedTag(tag *tags.Tag) int {
	if tag == nil {
		return 0
	}

	kept := c.active[:0]
	var removed []*ActiveEffect
	for _, entry := range c.active {
		if entry.Spec.Definition().Grants(tag) {
			removed = append(removed, entry)
			continue
		}
		kept = append(kept, entry)
	}
	clearTail(c.active, len(kept))
	c.active = kept

	if len(removed) == 0 {
		return 0
	}

	c.Recompute()
	for _, entry := range removed {
		log.Printf("[EFFECTS] Removed %s (%s) from %s by tag %s", entry.Name(), entry.ID, c.id, tag.Name())
		c.emit(c.effectEvent(events.OnEffectRemoved, entry.Spec, entry.ID))
	}
	return len(removed)
}

// ActiveEffects returns a copy of the active effect list in insertion order
func (c *Character) ActiveEffects() []*ActiveEffect {
	out := make([]*ActiveEffect, len(c.active))
	copy(out, c.active)
	return out
}

func (c *Character) effectEvent(eventType events.EventType, spec *Spec, entryID string) *events.GameEvent {
	def := spec.Definition()
	event := events.NewGameEvent(eventType).
		WithContext(events.ContextCharacterID, c.id).
		WithContext(events.ContextSourceID, spec.sourceID()).
		WithContext(events.ContextEffectName, def.Name).
		WithContext(events.ContextDurationPolicy, def.DurationPolicy.String()).
		WithContext(events.ContextEffectLevel, spec.Level())
	if entryID != "" {
		event.WithContext(events.ContextEffectID, entryID)
	}
	return event
}

func (c *Character) emit(event *events.GameEvent) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.Emit(event); err != nil {
		log.Printf("[EFFECTS] Failed to emit %s for %s: %v", event.Type, c.id, err)
	}
}

// clearTail drops references past n so removed entries can be collected
func clearTail(s []*ActiveEffect, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
