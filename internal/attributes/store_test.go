package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

func TestAttribute_Identity(t *testing.T) {
	a := attributes.New("Health")
	b := attributes.New("Health")

	assert.Equal(t, a.Name(), b.Name())
	assert.NotSame(t, a, b)

	store := attributes.NewMemoryStore()
	store.Register(a, 100)

	_, err := store.GetValue(b)
	assert.True(t, engineerr.IsNotFound(err), "same name must not resolve to a different attribute")
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input   string
		want    attributes.Operator
		wantErr bool
	}{
		{input: "add", want: attributes.OperatorAdd},
		{input: "Multiply", want: attributes.OperatorMultiply},
		{input: "mul", want: attributes.OperatorMultiply},
		{input: " override ", want: attributes.OperatorOverride},
		{input: "divide", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := attributes.ParseOperator(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestModifier_ApplyTo(t *testing.T) {
	assert.Equal(t, 90.0, attributes.Add(-10).ApplyTo(100))
	assert.Equal(t, 150.0, attributes.Multiply(1.5).ApplyTo(100))
	assert.Equal(t, 5.0, attributes.Override(5).ApplyTo(100))
	assert.Equal(t, 100.0, attributes.Modifier{Operator: attributes.Operator(42), Value: 3}.ApplyTo(100))
}

func TestMemoryStore_Recompute(t *testing.T) {
	strength := attributes.New("Strength")

	tests := []struct {
		name      string
		base      float64
		modifiers []attributes.Modifier
		want      float64
	}{
		{
			name: "no modifiers keeps base",
			base: 10,
			want: 10,
		},
		{
			name:      "adds sum",
			base:      10,
			modifiers: []attributes.Modifier{attributes.Add(5), attributes.Add(3)},
			want:      18,
		},
		{
			name:      "adds before multiplies regardless of encounter order",
			base:      10,
			modifiers: []attributes.Modifier{attributes.Multiply(2), attributes.Add(5)},
			want:      30,
		},
		{
			name:      "multiplies compose",
			base:      10,
			modifiers: []attributes.Modifier{attributes.Multiply(2), attributes.Multiply(1.5)},
			want:      30,
		},
		{
			name:      "override wins over add and multiply",
			base:      10,
			modifiers: []attributes.Modifier{attributes.Override(7), attributes.Add(5), attributes.Multiply(2)},
			want:      7,
		},
		{
			name:      "last override wins",
			base:      10,
			modifiers: []attributes.Modifier{attributes.Override(7), attributes.Override(3)},
			want:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := attributes.NewMemoryStore()
			store.Register(strength, tt.base)

			store.ResetModifiers()
			for _, mod := range tt.modifiers {
				require.True(t, store.ApplyModifier(strength, mod))
			}
			store.RecomputeCurrentValues()

			value, err := store.GetValue(strength)
			require.NoError(t, err)
			assert.Equal(t, tt.base, value.Base)
			assert.InDelta(t, tt.want, value.Current, 1e-9)
		})
	}
}

func TestMemoryStore_ResetModifiers(t *testing.T) {
	health := attributes.New("Health")
	store := attributes.NewMemoryStore()
	store.Register(health, 100)

	store.ApplyModifier(health, attributes.Add(20))
	store.RecomputeCurrentValues()
	value, err := store.GetValue(health)
	require.NoError(t, err)
	assert.Equal(t, 120.0, value.Current)

	store.ResetModifiers()
	store.RecomputeCurrentValues()
	value, err = store.GetValue(health)
	require.NoError(t, err)
	assert.Equal(t, 100.0, value.Current)
}

func TestMemoryStore_UnknownAttribute(t *testing.T) {
	store := attributes.NewMemoryStore()
	mana := attributes.New("Mana")

	_, err := store.GetValue(mana)
	assert.True(t, engineerr.IsNotFound(err))

	err = store.SetBaseValue(mana, 3)
	assert.True(t, engineerr.IsNotFound(err))

	assert.False(t, store.ApplyModifier(mana, attributes.Add(1)))
}

func TestMemoryStore_ValuesAndOrder(t *testing.T) {
	health := attributes.New("Health")
	armor := attributes.New("Armor")

	store := attributes.NewMemoryStore()
	store.Register(health, 100)
	store.Register(armor, 12)
	require.NoError(t, store.SetBaseValue(armor, 14))
	store.RecomputeCurrentValues()

	assert.Equal(t, []*attributes.Attribute{health, armor}, store.Attributes())
	assert.Equal(t, []string{"Armor", "Health"}, store.SortedNames())
	assert.Equal(t, map[string]attributes.Value{
		"Health": {Base: 100, Current: 100},
		"Armor":  {Base: 14, Current: 14},
	}, store.Values())

	// re-registering resets the value but keeps a single entry
	store.Register(health, 50)
	assert.Len(t, store.Attributes(), 2)
	value, err := store.GetValue(health)
	require.NoError(t, err)
	assert.Equal(t, attributes.Value{Base: 50, Current: 50}, value)
}
