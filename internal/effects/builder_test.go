package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
)

func TestBuilder(t *testing.T) {
	def, err := NewBuilder("Venom").
		WithDuration(6).
		WithPeriod(2).
		AddConstant(health, attributes.OperatorAdd, -3).
		AddModifier(strength, attributes.OperatorMultiply, Constant(0.5), 1).
		GrantTags(tagPoisoned).
		RequireTags(tagStunned).
		IgnoreTags(tagBlessed).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Venom", def.Name)
	assert.Equal(t, DurationHasDuration, def.DurationPolicy)
	assert.Equal(t, 6.0, def.Duration)
	assert.Equal(t, 2.0, def.Period)
	assert.True(t, def.IsPeriodic())
	require.Len(t, def.Modifiers, 2)
	assert.Same(t, health, def.Modifiers[0].Attribute)
	assert.Equal(t, 1.0, def.Modifiers[0].Multiplier)
	assert.True(t, def.Grants(tagPoisoned))
	assert.False(t, def.Grants(tagBlessed))
	assert.Len(t, def.ApplicationRequirements.Require, 1)
	assert.Len(t, def.ApplicationRequirements.Ignore, 1)
}

func TestBuilder_Policies(t *testing.T) {
	instant, err := NewBuilder("Heal").AddConstant(health, attributes.OperatorAdd, 10).Build()
	require.NoError(t, err)
	assert.Equal(t, DurationInstant, instant.DurationPolicy)

	infinite, err := NewBuilder("Aura").WithDuration(3).Infinite().Build()
	require.NoError(t, err)
	assert.Equal(t, DurationInfinite, infinite.DurationPolicy)

	computed, err := NewBuilder("Ward").WithDurationMagnitude(Constant(2), 3).Build()
	require.NoError(t, err)
	assert.Equal(t, DurationHasDuration, computed.DurationPolicy)
	assert.Equal(t, 3.0, computed.DurationMultiplier)
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
	}{
		{name: "nil definition", def: nil},
		{name: "duration without time", def: &Definition{Name: "x", DurationPolicy: DurationHasDuration}},
		{name: "unknown policy", def: &Definition{Name: "x", DurationPolicy: DurationPolicy(9)}},
		{name: "negative period", def: &Definition{Name: "x", DurationPolicy: DurationInfinite, Period: -1}},
		{name: "modifier without attribute", def: &Definition{Name: "x", Modifiers: []ModifierDefinition{
			{Operator: attributes.OperatorAdd, Magnitude: Constant(1), Multiplier: 1},
		}}},
		{name: "modifier without magnitude", def: &Definition{Name: "x", Modifiers: []ModifierDefinition{
			{Attribute: health, Operator: attributes.OperatorAdd, Multiplier: 1},
		}}},
		{name: "modifier with unknown operator", def: &Definition{Name: "x", Modifiers: []ModifierDefinition{
			{Attribute: health, Operator: attributes.Operator(7), Magnitude: Constant(1), Multiplier: 1},
		}}},
		{name: "nil required tag", def: &Definition{Name: "x", ApplicationRequirements: TagRequirements{
			Require: []*tags.Tag{tagBlessed, nil},
		}}},
		{name: "nil ignored tag", def: &Definition{Name: "x", ApplicationRequirements: TagRequirements{
			Ignore: []*tags.Tag{nil},
		}}},
		{name: "nil granted tag", def: &Definition{Name: "x", GrantedTags: []*tags.Tag{nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			require.Error(t, err)
			assert.True(t, engineerr.IsConfiguration(err))
		})
	}

	t.Run("builder surfaces validation errors", func(t *testing.T) {
		_, err := NewBuilder("Broken").WithDuration(0).Build()
		assert.True(t, engineerr.IsConfiguration(err))
	})
}
