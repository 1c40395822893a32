package effects

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
)

// DurationPolicy decides whether an effect is tracked and for how long
type DurationPolicy int

const (
	DurationInstant     DurationPolicy = iota // Applied once to base values, never tracked
	DurationHasDuration                       // Tracked until remaining duration reaches zero
	DurationInfinite                          // Tracked until removed explicitly
)

// String returns the string representation of the policy
func (p DurationPolicy) String() string {
	switch p {
	case DurationInstant:
		return "instant"
	case DurationHasDuration:
		return "has_duration"
	case DurationInfinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// ParseDurationPolicy parses "instant", "has_duration" (or "duration") and "infinite"
func ParseDurationPolicy(s string) (DurationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instant":
		return DurationInstant, nil
	case "has_duration", "hasduration", "duration":
		return DurationHasDuration, nil
	case "infinite":
		return DurationInfinite, nil
	default:
		return 0, fmt.Errorf("unknown duration policy %q", s)
	}
}

// ModifierDefinition is one (attribute, operator, magnitude, multiplier) rule
type ModifierDefinition struct {
	Attribute  *attributes.Attribute
	Operator   attributes.Operator
	Magnitude  MagnitudeSource
	Multiplier float64
}

// TagRequirements gate whether an effect may be applied
type TagRequirements struct {
	// Require tags must all be granted by effects already on the target
	Require []*tags.Tag
	// Ignore tags block the application if any is granted on the target
	Ignore []*tags.Tag
}

// Definition is the author-time description of a gameplay effect.
// A definition is shared by every spec created from it and must not be
// mutated after the first spec exists.
type Definition struct {
	Name           string
	DurationPolicy DurationPolicy

	// Duration is the configured duration for DurationHasDuration.
	Duration float64
	// DurationMagnitude, when set, replaces Duration with
	// Calculate(spec) * DurationMultiplier at spec creation.
	DurationMagnitude  MagnitudeSource
	DurationMultiplier float64

	// Period is the time between periodic executions; <= 0 disables them.
	Period float64

	Modifiers               []ModifierDefinition
	GrantedTags             []*tags.Tag
	ApplicationRequirements TagRequirements
}

// IsPeriodic reports whether the effect executes on a period
func (d *Definition) IsPeriodic() bool {
	return d.Period > 0
}

// Grants reports whether the definition grants the tag
func (d *Definition) Grants(tag *tags.Tag) bool {
	for _, t := range d.GrantedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks the definition for missing or malformed fields
func (d *Definition) Validate() error {
	if d == nil {
		return engineerr.Configuration("effect definition is required")
	}

	switch d.DurationPolicy {
	case DurationInstant, DurationInfinite:
	case DurationHasDuration:
		if d.Duration <= 0 && d.DurationMagnitude == nil {
			return engineerr.Configurationf("effect %q has a duration policy but no positive duration", d.Name).
				WithMeta("effect", d.Name)
		}
	default:
		return engineerr.Configurationf("effect %q has unknown duration policy %d", d.Name, d.DurationPolicy).
			WithMeta("effect", d.Name)
	}

	if d.Period < 0 {
		return engineerr.Configurationf("effect %q has negative period %g", d.Name, d.Period).
			WithMeta("effect", d.Name)
	}

	for i, mod := range d.Modifiers {
		switch {
		case mod.Attribute == nil:
			return engineerr.Configurationf("effect %q modifier %d has no attribute", d.Name, i).
				WithMeta("effect", d.Name)
		case mod.Magnitude == nil:
			return engineerr.Configurationf("effect %q modifier %d on %s has no magnitude", d.Name, i, mod.Attribute.Name()).
				WithMeta("effect", d.Name)
		case !mod.Operator.Valid():
			return engineerr.Configurationf("effect %q modifier %d on %s has unknown operator", d.Name, i, mod.Attribute.Name()).
				WithMeta("effect", d.Name)
		}
	}

	tagLists := []struct {
		field string
		tags  []*tags.Tag
	}{
		{field: "granted", tags: d.GrantedTags},
		{field: "required", tags: d.ApplicationRequirements.Require},
		{field: "ignored", tags: d.ApplicationRequirements.Ignore},
	}
	for _, list := range tagLists {
		for i, tag := range list.tags {
			if tag == nil {
				return engineerr.Configurationf("effect %q %s tag %d is nil", d.Name, list.field, i).
					WithMeta("effect", d.Name)
			}
		}
	}

	return nil
}
