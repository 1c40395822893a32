package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/effects"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/tags"
	"github.com/KirkDiggler/gameplay-effects/internal/uuid"
)

// Attribute and tag identities shared by fixtures
var (
	Health   = attributes.New("Health")
	Strength = attributes.New("Strength")
	Armor    = attributes.New("Armor")

	TagBlessed = tags.New("Status.Blessed")
)

// CreateTestCharacter creates a character with Health 100, Strength 10 and
// Armor 12 and sequential effect IDs prefixed by the character ID
func CreateTestCharacter(t *testing.T, id string, bus events.Bus) *effects.Character {
	t.Helper()

	store := attributes.NewMemoryStore()
	store.Register(Health, 100)
	store.Register(Strength, 10)
	store.Register(Armor, 12)

	c, err := effects.NewCharacter(&effects.CharacterConfig{
		ID:          id,
		Level:       1,
		Store:       store,
		EventBus:    bus,
		IDGenerator: uuid.NewSequentialGenerator(id),
	})
	require.NoError(t, err)
	return c
}

// CreateRegenEffect creates a periodic Health regeneration effect
func CreateRegenEffect(t *testing.T, duration, amount float64) *effects.Definition {
	t.Helper()

	def, err := effects.NewBuilder("Regeneration").
		WithDuration(duration).
		WithPeriod(1).
		AddConstant(Health, attributes.OperatorAdd, amount).
		Build()
	require.NoError(t, err)
	return def
}

// CreateShieldEffect creates a timed Armor bonus
func CreateShieldEffect(t *testing.T, duration, bonus float64) *effects.Definition {
	t.Helper()

	def, err := effects.NewBuilder("Shield").
		WithDuration(duration).
		AddConstant(Armor, attributes.OperatorAdd, bonus).
		Build()
	require.NoError(t, err)
	return def
}
