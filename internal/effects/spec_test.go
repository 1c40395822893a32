package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/dice"
	mockdice "github.com/KirkDiggler/gameplay-effects/internal/dice/mock"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
)

type staticSource struct {
	id    string
	level float64
}

func (s staticSource) ID() string     { return s.id }
func (s staticSource) Level() float64 { return s.level }

func TestNewSpec(t *testing.T) {
	t.Run("initializes runtime state", func(t *testing.T) {
		def := &Definition{Name: "Haste", DurationPolicy: DurationHasDuration, Duration: 4, Period: 2}

		spec, err := NewSpec(def, staticSource{id: "wizard", level: 5}, 3)
		require.NoError(t, err)

		assert.Same(t, def, spec.Definition())
		assert.Equal(t, 3.0, spec.Level())
		assert.Equal(t, "wizard", spec.Source().ID())
		assert.Equal(t, 4.0, spec.DurationRemaining())
		assert.Equal(t, 0.0, spec.PeriodTimer())
	})

	t.Run("nil source is allowed", func(t *testing.T) {
		spec, err := NewSpec(&Definition{Name: "Trap"}, nil, 1)
		require.NoError(t, err)
		assert.Nil(t, spec.Source())
		assert.Equal(t, "", spec.sourceID())
	})

	t.Run("duration magnitude overrides duration", func(t *testing.T) {
		def := &Definition{
			Name:               "Scaling Ward",
			DurationPolicy:     DurationHasDuration,
			Duration:           1,
			DurationMagnitude:  NewLevelCurve(CurvePoint{Level: 1, Value: 2}, CurvePoint{Level: 5, Value: 10}),
			DurationMultiplier: 2,
		}

		spec, err := NewSpec(def, nil, 3)
		require.NoError(t, err)
		assert.Equal(t, 12.0, spec.DurationRemaining())
	})

	t.Run("invalid definition is a configuration error", func(t *testing.T) {
		_, err := NewSpec(nil, nil, 1)
		assert.True(t, engineerr.IsConfiguration(err))
	})

	t.Run("specs do not share runtime state", func(t *testing.T) {
		def := &Definition{Name: "Burn", DurationPolicy: DurationHasDuration, Duration: 3, Period: 1}
		a, err := NewSpec(def, nil, 1)
		require.NoError(t, err)
		b, err := NewSpec(def, nil, 1)
		require.NoError(t, err)

		a.UpdateRemainingDuration(2)
		assert.Equal(t, 1.0, a.DurationRemaining())
		assert.Equal(t, 3.0, b.DurationRemaining())
	})
}

func TestSpec_TickPeriodic(t *testing.T) {
	t.Run("not periodic never triggers", func(t *testing.T) {
		spec, err := NewSpec(&Definition{Name: "Flat", DurationPolicy: DurationInfinite}, nil, 1)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			assert.False(t, spec.TickPeriodic(1))
		}
		assert.Equal(t, 0.0, spec.PeriodTimer())
	})

	t.Run("carries overshoot", func(t *testing.T) {
		spec, err := NewSpec(&Definition{Name: "Pulse", DurationPolicy: DurationInfinite, Period: 1.5}, nil, 1)
		require.NoError(t, err)

		assert.False(t, spec.TickPeriodic(1))
		assert.True(t, spec.TickPeriodic(1))
		assert.Equal(t, 0.5, spec.PeriodTimer())
		assert.True(t, spec.TickPeriodic(1))
		assert.Equal(t, 0.0, spec.PeriodTimer())
	})
}

func TestSpec_IsExpired(t *testing.T) {
	timed, err := NewSpec(&Definition{Name: "Timed", DurationPolicy: DurationHasDuration, Duration: 1}, nil, 1)
	require.NoError(t, err)
	forever, err := NewSpec(&Definition{Name: "Forever", DurationPolicy: DurationInfinite}, nil, 1)
	require.NoError(t, err)

	timed.UpdateRemainingDuration(1)
	forever.UpdateRemainingDuration(100)

	assert.True(t, timed.IsExpired())
	assert.False(t, forever.IsExpired())
}

func TestLevelCurve(t *testing.T) {
	curve := NewLevelCurve(
		CurvePoint{Level: 10, Value: 50},
		CurvePoint{Level: 1, Value: 5},
		CurvePoint{Level: 5, Value: 25},
	)

	tests := []struct {
		level    float64
		expected float64
	}{
		{level: 0, expected: 5},
		{level: 1, expected: 5},
		{level: 3, expected: 15},
		{level: 5, expected: 25},
		{level: 7.5, expected: 37.5},
		{level: 10, expected: 50},
		{level: 20, expected: 50},
	}

	for _, tt := range tests {
		spec, err := NewSpec(&Definition{Name: "Curve"}, nil, tt.level)
		require.NoError(t, err)

		v, ok := curve.Calculate(spec)
		assert.True(t, ok)
		assert.InDelta(t, tt.expected, v, 0.0001, "level %g", tt.level)
	}

	t.Run("empty curve has no value", func(t *testing.T) {
		_, ok := LevelCurve{}.Calculate(nil)
		assert.False(t, ok)
	})
}

func TestConstant(t *testing.T) {
	v, ok := Constant(-3).Calculate(nil)
	assert.True(t, ok)
	assert.Equal(t, -3.0, v)
}

func TestDiceMagnitude(t *testing.T) {
	t.Run("rolls notation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roller := mockdice.NewMockRoller(ctrl)
		roller.EXPECT().Roll(1, 4, 1).Return(&dice.RollResult{Total: 4, Rolls: []int{3}, Bonus: 1}, nil)

		v, ok := DiceMagnitude{Notation: "1d4+1", Roller: roller}.Calculate(nil)
		assert.True(t, ok)
		assert.Equal(t, 4.0, v)
	})

	t.Run("bad notation has no value", func(t *testing.T) {
		v, ok := DiceMagnitude{Notation: "banana", Roller: mockdice.NewManualMockRoller()}.Calculate(nil)
		assert.False(t, ok)
		assert.Equal(t, 0.0, v)
	})

	t.Run("nil roller has no value", func(t *testing.T) {
		_, ok := DiceMagnitude{Notation: "1d6"}.Calculate(nil)
		assert.False(t, ok)
	})

	t.Run("drives a durational contribution", func(t *testing.T) {
		c, store := newTestCharacter(t, nil)

		def, err := NewBuilder("Bardic Inspiration").WithDuration(2).
			AddModifier(strength, attributes.OperatorAdd,
				DiceMagnitude{Notation: "1d6", Roller: mockdice.NewManualMockRoller(5)}, 1).
			Build()
		require.NoError(t, err)
		mustApply(t, c, def)

		assert.Equal(t, 15.0, mustValue(t, store, strength).Current)
	})
}

func TestParseDurationPolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected DurationPolicy
		wantErr  bool
	}{
		{input: "instant", expected: DurationInstant},
		{input: "has_duration", expected: DurationHasDuration},
		{input: "Duration", expected: DurationHasDuration},
		{input: " infinite ", expected: DurationInfinite},
		{input: "forever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationPolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.NotEqual(t, "unknown", got.String())
		})
	}
}
