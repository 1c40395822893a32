package attributes

import (
	"sort"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

// Store holds base and current values per attribute.
//
// Current values are derived: ResetModifiers clears all pending
// contributions, ApplyModifier folds one contribution in, and
// RecomputeCurrentValues derives current = f(base, contributions).
type Store interface {
	GetValue(attr *Attribute) (Value, error)
	SetBaseValue(attr *Attribute, value float64) error
	ResetModifiers()
	ApplyModifier(attr *Attribute, mod Modifier) bool
	RecomputeCurrentValues()
}

// aggregate accumulates contributions for one attribute.
//
// Fold order: current = (base + sum(Add)) * product(Multiply). If any
// Override was applied, the last one applied replaces the result.
type aggregate struct {
	add         float64
	multiply    float64
	override    float64
	hasOverride bool
}

func neutralAggregate() aggregate {
	return aggregate{multiply: 1}
}

func (a *aggregate) combine(mod Modifier) {
	switch mod.Operator {
	case OperatorAdd:
		a.add += mod.Value
	case OperatorMultiply:
		a.multiply *= mod.Value
	case OperatorOverride:
		a.override = mod.Value
		a.hasOverride = true
	}
}

func (a *aggregate) evaluate(base float64) float64 {
	if a.hasOverride {
		return a.override
	}
	return (base + a.add) * a.multiply
}

type entry struct {
	attr      *Attribute
	value     Value
	modifiers aggregate
}

// MemoryStore is an in-memory Store for a single character
type MemoryStore struct {
	entries map[*Attribute]*entry
	order   []*Attribute
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[*Attribute]*entry),
	}
}

// Register adds an attribute with its initial base value. Registering an
// attribute twice resets its base value.
func (s *MemoryStore) Register(attr *Attribute, base float64) {
	if e, ok := s.entries[attr]; ok {
		e.value = Value{Base: base, Current: base}
		e.modifiers = neutralAggregate()
		return
	}

	s.entries[attr] = &entry{
		attr:      attr,
		value:     Value{Base: base, Current: base},
		modifiers: neutralAggregate(),
	}
	s.order = append(s.order, attr)
}

// Attributes returns the registered attributes in registration order
func (s *MemoryStore) Attributes() []*Attribute {
	out := make([]*Attribute, len(s.order))
	copy(out, s.order)
	return out
}

// GetValue returns the base and current value of an attribute
func (s *MemoryStore) GetValue(attr *Attribute) (Value, error) {
	e, ok := s.entries[attr]
	if !ok {
		return Value{}, engineerr.NotFoundf("attribute %s not found", attr.Name())
	}
	return e.value, nil
}

// SetBaseValue overwrites the base value. The current value is not touched
// until the next recompute.
func (s *MemoryStore) SetBaseValue(attr *Attribute, value float64) error {
	e, ok := s.entries[attr]
	if !ok {
		return engineerr.NotFoundf("attribute %s not found", attr.Name())
	}
	e.value.Base = value
	return nil
}

// ResetModifiers returns every attribute's pending contributions to identity
func (s *MemoryStore) ResetModifiers() {
	for _, e := range s.entries {
		e.modifiers = neutralAggregate()
	}
}

// ApplyModifier folds one contribution into an attribute. It returns false
// for unknown attributes.
func (s *MemoryStore) ApplyModifier(attr *Attribute, mod Modifier) bool {
	e, ok := s.entries[attr]
	if !ok {
		return false
	}
	e.modifiers.combine(mod)
	return true
}

// RecomputeCurrentValues derives current values from base plus contributions
func (s *MemoryStore) RecomputeCurrentValues() {
	for _, e := range s.entries {
		e.value.Current = e.modifiers.evaluate(e.value.Base)
	}
}

// Values returns every attribute value keyed by attribute name
func (s *MemoryStore) Values() map[string]Value {
	out := make(map[string]Value, len(s.entries))
	for _, attr := range s.order {
		out[attr.Name()] = s.entries[attr].value
	}
	return out
}

// SortedNames returns the names of all registered attributes in lexical order
func (s *MemoryStore) SortedNames() []string {
	names := make([]string, 0, len(s.order))
	for _, attr := range s.order {
		names = append(names, attr.Name())
	}
	sort.Strings(names)
	return names
}
