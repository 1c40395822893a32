package attributes

import (
	"fmt"
	"strings"
)

// Attribute identifies one numeric character attribute.
// Attributes compare by pointer identity; two attributes created with the
// same name are distinct.
type Attribute struct {
	name string
}

// New creates a new attribute identifier
func New(name string) *Attribute {
	return &Attribute{name: name}
}

// Name returns the display name of the attribute
func (a *Attribute) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

func (a *Attribute) String() string { return a.Name() }

// Operator is how a modifier contribution combines with an attribute
type Operator int

const (
	OperatorAdd Operator = iota
	OperatorMultiply
	OperatorOverride
)

// String returns the string representation of the operator
func (o Operator) String() string {
	switch o {
	case OperatorAdd:
		return "add"
	case OperatorMultiply:
		return "multiply"
	case OperatorOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Valid reports whether the operator is one of the known operators
func (o Operator) Valid() bool {
	return o >= OperatorAdd && o <= OperatorOverride
}

// ParseOperator parses an operator name such as "add" or "Multiply"
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return OperatorAdd, nil
	case "multiply", "mul":
		return OperatorMultiply, nil
	case "override":
		return OperatorOverride, nil
	default:
		return 0, fmt.Errorf("unknown modifier operator %q", s)
	}
}

// Modifier is a single resolved contribution to an attribute
type Modifier struct {
	Operator Operator
	Value    float64
}

// Add creates an additive contribution
func Add(delta float64) Modifier {
	return Modifier{Operator: OperatorAdd, Value: delta}
}

// Multiply creates a multiplicative contribution
func Multiply(factor float64) Modifier {
	return Modifier{Operator: OperatorMultiply, Value: factor}
}

// Override creates a contribution that replaces the attribute value
func Override(value float64) Modifier {
	return Modifier{Operator: OperatorOverride, Value: value}
}

// ApplyTo applies the contribution directly to a base value
func (m Modifier) ApplyTo(base float64) float64 {
	switch m.Operator {
	case OperatorAdd:
		return base + m.Value
	case OperatorMultiply:
		return base * m.Value
	case OperatorOverride:
		return m.Value
	default:
		return base
	}
}

func (m Modifier) String() string {
	return fmt.Sprintf("%s(%g)", m.Operator, m.Value)
}

// Value holds the base and derived current value of an attribute
type Value struct {
	Base    float64 `json:"base"`
	Current float64 `json:"current"`
}
