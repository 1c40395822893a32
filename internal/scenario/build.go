package scenario

import (
	"sort"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/dice"
	"github.com/KirkDiggler/gameplay-effects/internal/effects"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
	"github.com/KirkDiggler/gameplay-effects/internal/turn"
	"github.com/KirkDiggler/gameplay-effects/internal/uuid"
)

// World is a scenario resolved into live objects
type World struct {
	Attributes  map[string]*attributes.Attribute
	Tags        *tags.Registry
	Definitions map[string]*effects.Definition
	// Characters are ordered by name
	Characters []*effects.Character
	Script     turn.Script
	EventBus   *events.EventBus
}

// Character returns the character with the given name
func (w *World) Character(name string) (*effects.Character, bool) {
	for _, c := range w.Characters {
		if c.ID() == name {
			return c, true
		}
	}
	return nil, false
}

// Build resolves every name in the scenario. Dice magnitudes roll with
// roller. Characters share one event bus and use their name as ID.
func (s *Scenario) Build(roller dice.Roller) (*World, error) {
	w := &World{
		Attributes:  make(map[string]*attributes.Attribute, len(s.Attributes)),
		Tags:        tags.NewRegistry(),
		Definitions: make(map[string]*effects.Definition, len(s.Effects)),
		EventBus:    events.NewEventBus(),
	}

	for _, name := range s.Attributes {
		if name == "" {
			return nil, engineerr.Configuration("attribute name cannot be empty")
		}
		if _, exists := w.Attributes[name]; exists {
			return nil, engineerr.Configurationf("attribute %q declared twice", name)
		}
		w.Attributes[name] = attributes.New(name)
	}

	for _, name := range s.Tags {
		if name == "" {
			return nil, engineerr.Configuration("tag name cannot be empty")
		}
		w.Tags.Get(name)
	}

	for _, name := range sortedKeys(s.Effects) {
		def, err := w.buildDefinition(name, s.Effects[name], roller)
		if err != nil {
			return nil, err
		}
		w.Definitions[name] = def
	}

	for _, name := range sortedKeys(s.Characters) {
		c, err := w.buildCharacter(name, s.Characters[name])
		if err != nil {
			return nil, err
		}
		w.Characters = append(w.Characters, c)
	}

	for i, entry := range s.Script {
		action, err := w.buildAction(i, entry)
		if err != nil {
			return nil, err
		}
		w.Script = append(w.Script, action)
	}

	return w, nil
}

func (w *World) buildDefinition(name string, cfg EffectConfig, roller dice.Roller) (*effects.Definition, error) {
	policy, err := effects.ParseDurationPolicy(cfg.Policy)
	if err != nil {
		return nil, engineerr.WrapWithCode(err, engineerr.CodeConfiguration, "effect "+name).
			WithMeta("effect", name)
	}

	def := &effects.Definition{
		Name:           name,
		DurationPolicy: policy,
		Duration:       cfg.Duration,
		Period:         cfg.Period,
	}

	for i, mc := range cfg.Modifiers {
		mod, err := w.buildModifier(name, i, mc, roller)
		if err != nil {
			return nil, err
		}
		def.Modifiers = append(def.Modifiers, mod)
	}

	if def.GrantedTags, err = w.lookupTags(name, cfg.GrantedTags); err != nil {
		return nil, err
	}
	if def.ApplicationRequirements.Require, err = w.lookupTags(name, cfg.RequireTags); err != nil {
		return nil, err
	}
	if def.ApplicationRequirements.Ignore, err = w.lookupTags(name, cfg.IgnoreTags); err != nil {
		return nil, err
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (w *World) buildModifier(effect string, index int, mc ModifierConfig, roller dice.Roller) (effects.ModifierDefinition, error) {
	attr, ok := w.Attributes[mc.Attribute]
	if !ok {
		return effects.ModifierDefinition{}, engineerr.Configurationf("effect %q modifier %d: unknown attribute %q", effect, index, mc.Attribute).
			WithMeta("effect", effect)
	}

	op, err := attributes.ParseOperator(mc.Op)
	if err != nil {
		return effects.ModifierDefinition{}, engineerr.WrapWithCode(err, engineerr.CodeConfiguration,
			"effect "+effect).WithMeta("effect", effect)
	}

	sources := 0
	var magnitude effects.MagnitudeSource
	if mc.Magnitude != nil {
		sources++
		magnitude = effects.Constant(*mc.Magnitude)
	}
	if len(mc.Curve) > 0 {
		sources++
		points := make([]effects.CurvePoint, 0, len(mc.Curve))
		for _, p := range mc.Curve {
			points = append(points, effects.CurvePoint{Level: p.Level, Value: p.Value})
		}
		magnitude = effects.NewLevelCurve(points...)
	}
	if mc.Dice != "" {
		sources++
		if _, err := dice.ParseNotation(mc.Dice); err != nil {
			return effects.ModifierDefinition{}, engineerr.WrapWithCode(err, engineerr.CodeConfiguration,
				"effect "+effect).WithMeta("effect", effect)
		}
		magnitude = effects.DiceMagnitude{Notation: mc.Dice, Roller: roller}
	}
	if sources != 1 {
		return effects.ModifierDefinition{}, engineerr.Configurationf(
			"effect %q modifier %d needs exactly one of magnitude, curve or dice", effect, index).
			WithMeta("effect", effect)
	}

	multiplier := 1.0
	if mc.Multiplier != nil {
		multiplier = *mc.Multiplier
	}

	return effects.ModifierDefinition{
		Attribute:  attr,
		Operator:   op,
		Magnitude:  magnitude,
		Multiplier: multiplier,
	}, nil
}

func (w *World) lookupTags(effect string, names []string) ([]*tags.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	out := make([]*tags.Tag, 0, len(names))
	for _, name := range names {
		tag, ok := w.Tags.Lookup(name)
		if !ok {
			return nil, engineerr.Configurationf("effect %q references unknown tag %q", effect, name).
				WithMeta("effect", effect)
		}
		out = append(out, tag)
	}
	return out, nil
}

func (w *World) buildCharacter(name string, cfg CharacterConfig) (*effects.Character, error) {
	store := attributes.NewMemoryStore()
	for _, attrName := range sortedKeys(w.Attributes) {
		store.Register(w.Attributes[attrName], 0)
	}

	for attrName, base := range cfg.Attributes {
		attr, ok := w.Attributes[attrName]
		if !ok {
			return nil, engineerr.Configurationf("character %q has unknown attribute %q", name, attrName).
				WithMeta("character_id", name)
		}
		store.Register(attr, base)
	}

	level := 1.0
	if cfg.Level != nil {
		level = *cfg.Level
	}

	return effects.NewCharacter(&effects.CharacterConfig{
		ID:          name,
		Level:       level,
		Store:       store,
		EventBus:    w.EventBus,
		IDGenerator: uuid.NewSequentialGenerator(name),
	})
}

func (w *World) buildAction(index int, entry ScriptEntry) (turn.Action, error) {
	if entry.Turn < 1 {
		return turn.Action{}, engineerr.Configurationf("script entry %d: turn must be at least 1, got %d", index, entry.Turn)
	}

	def, ok := w.Definitions[entry.Effect]
	if !ok {
		return turn.Action{}, engineerr.Configurationf("script entry %d: unknown effect %q", index, entry.Effect)
	}
	if _, ok := w.Character(entry.Target); !ok {
		return turn.Action{}, engineerr.Configurationf("script entry %d: unknown target %q", index, entry.Target)
	}
	if entry.Source != "" {
		if _, ok := w.Character(entry.Source); !ok {
			return turn.Action{}, engineerr.Configurationf("script entry %d: unknown source %q", index, entry.Source)
		}
	}

	return turn.Action{
		Turn:   entry.Turn,
		Source: entry.Source,
		Target: entry.Target,
		Effect: def,
		Level:  entry.Level,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
