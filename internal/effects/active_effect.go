package effects

import (
	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
)

// ResolvedModifier is one contribution with its magnitude already calculated
type ResolvedModifier struct {
	Attribute *attributes.Attribute
	Modifier  attributes.Modifier
}

// ActiveEffect is a durational spec tracked on a character
type ActiveEffect struct {
	ID        string
	Spec      *Spec
	Modifiers []ResolvedModifier
}

// Name returns the definition name of the effect
func (a *ActiveEffect) Name() string {
	return a.Spec.Definition().Name
}

// newActiveEffect resolves every modifier of the spec once
func newActiveEffect(id string, spec *Spec) *ActiveEffect {
	def := spec.Definition()
	resolved := make([]ResolvedModifier, 0, len(def.Modifiers))
	for _, mod := range def.Modifiers {
		resolved = append(resolved, ResolvedModifier{
			Attribute: mod.Attribute,
			Modifier: attributes.Modifier{
				Operator: mod.Operator,
				Value:    resolveMagnitude(mod, spec),
			},
		})
	}

	return &ActiveEffect{
		ID:        id,
		Spec:      spec,
		Modifiers: resolved,
	}
}

// resolveMagnitude is Calculate(spec) * multiplier, or zero when the source
// has no value
func resolveMagnitude(mod ModifierDefinition, spec *Spec) float64 {
	v, ok := mod.Magnitude.Calculate(spec)
	if !ok {
		return 0
	}
	return v * mod.Multiplier
}
