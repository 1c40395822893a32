package effects

import (
	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
)

// Builder provides a fluent interface for creating effect definitions
type Builder struct {
	def *Definition
}

// NewBuilder creates a builder for an instant effect with the given name
func NewBuilder(name string) *Builder {
	return &Builder{
		def: &Definition{
			Name:           name,
			DurationPolicy: DurationInstant,
		},
	}
}

// Instant makes the effect change base values once
func (b *Builder) Instant() *Builder {
	b.def.DurationPolicy = DurationInstant
	return b
}

// WithDuration makes the effect last for duration ticks
func (b *Builder) WithDuration(duration float64) *Builder {
	b.def.DurationPolicy = DurationHasDuration
	b.def.Duration = duration
	return b
}

// WithDurationMagnitude computes the duration from a magnitude source when a
// spec is created
func (b *Builder) WithDurationMagnitude(source MagnitudeSource, multiplier float64) *Builder {
	b.def.DurationPolicy = DurationHasDuration
	b.def.DurationMagnitude = source
	b.def.DurationMultiplier = multiplier
	return b
}

// Infinite makes the effect last until removed
func (b *Builder) Infinite() *Builder {
	b.def.DurationPolicy = DurationInfinite
	return b
}

// WithPeriod executes the effect's modifiers every period ticks
func (b *Builder) WithPeriod(period float64) *Builder {
	b.def.Period = period
	return b
}

// AddModifier adds a modifier rule
func (b *Builder) AddModifier(attr *attributes.Attribute, op attributes.Operator, magnitude MagnitudeSource, multiplier float64) *Builder {
	b.def.Modifiers = append(b.def.Modifiers, ModifierDefinition{
		Attribute:  attr,
		Operator:   op,
		Magnitude:  magnitude,
		Multiplier: multiplier,
	})
	return b
}

// AddConstant adds a modifier with a constant magnitude and multiplier 1
func (b *Builder) AddConstant(attr *attributes.Attribute, op attributes.Operator, value float64) *Builder {
	return b.AddModifier(attr, op, Constant(value), 1)
}

// GrantTags adds tags granted while the effect is active
func (b *Builder) GrantTags(t ...*tags.Tag) *Builder {
	b.def.GrantedTags = append(b.def.GrantedTags, t...)
	return b
}

// RequireTags adds tags the target must have for the effect to apply
func (b *Builder) RequireTags(t ...*tags.Tag) *Builder {
	b.def.ApplicationRequirements.Require = append(b.def.ApplicationRequirements.Require, t...)
	return b
}

// IgnoreTags adds tags that block the effect from applying
func (b *Builder) IgnoreTags(t ...*tags.Tag) *Builder {
	b.def.ApplicationRequirements.Ignore = append(b.def.ApplicationRequirements.Ignore, t...)
	return b
}

// Build validates and returns the definition. The builder must not be
// reused afterwards.
func (b *Builder) Build() (*Definition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return b.def, nil
}
