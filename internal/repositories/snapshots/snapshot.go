package snapshots

import (
	"time"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/effects"
)

// EffectState is the persisted runtime state of one active effect
type EffectState struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Policy            string  `json:"policy"`
	DurationRemaining float64 `json:"duration_remaining"`
	PeriodTimer       float64 `json:"period_timer"`
}

// Snapshot is the state of one character at the end of a turn
type Snapshot struct {
	ID            string                      `json:"id"`
	CharacterID   string                      `json:"character_id"`
	Turn          int                         `json:"turn"`
	Attributes    map[string]attributes.Value `json:"attributes"`
	ActiveEffects []EffectState               `json:"active_effects"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// valueLister is implemented by stores that can enumerate their attributes
type valueLister interface {
	Values() map[string]attributes.Value
}

// Capture builds a snapshot of a character. Attribute values are only
// captured when the character's store can enumerate them.
func Capture(turn int, character *effects.Character) *Snapshot {
	snapshot := &Snapshot{
		CharacterID:   character.ID(),
		Turn:          turn,
		Attributes:    map[string]attributes.Value{},
		ActiveEffects: []EffectState{},
	}

	if lister, ok := character.Attributes().(valueLister); ok {
		snapshot.Attributes = lister.Values()
	}

	for _, active := range character.ActiveEffects() {
		snapshot.ActiveEffects = append(snapshot.ActiveEffects, EffectState{
			ID:                active.ID,
			Name:              active.Name(),
			Policy:            active.Spec.Definition().DurationPolicy.String(),
			DurationRemaining: active.Spec.DurationRemaining(),
			PeriodTimer:       active.Spec.PeriodTimer(),
		})
	}

	return snapshot
}

func copySnapshot(s *Snapshot) *Snapshot {
	out := *s
	out.Attributes = make(map[string]attributes.Value, len(s.Attributes))
	for k, v := range s.Attributes {
		out.Attributes[k] = v
	}
	out.ActiveEffects = append([]EffectState(nil), s.ActiveEffects...)
	return &out
}
