package events

// EventType represents the type of effect lifecycle event
type EventType int

const (
	// OnEffectApplied fires after an effect passed admission and was applied
	OnEffectApplied EventType = iota
	// OnEffectRejected fires when tag requirements blocked an application
	OnEffectRejected
	// OnEffectExpired fires when a durational effect ran out of time
	OnEffectExpired
	// OnEffectRemoved fires when an effect was removed explicitly
	OnEffectRemoved
	// OnPeriodicExecuted fires each time a periodic effect executes
	OnPeriodicExecuted
	// OnTurnStart and OnTurnEnd bracket one turn of the driver
	OnTurnStart
	OnTurnEnd
)

// String returns the string representation of the event type
func (e EventType) String() string {
	names := [...]string{
		"OnEffectApplied",
		"OnEffectRejected",
		"OnEffectExpired",
		"OnEffectRemoved",
		"OnPeriodicExecuted",
		"OnTurnStart",
		"OnTurnEnd",
	}
	if e < OnEffectApplied || int(e) >= len(names) {
		return "Unknown"
	}
	return names[e]
}
