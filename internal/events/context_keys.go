package events

// Context keys for event data
const (
	ContextCharacterID     = "character_id"     // string: character the event happened on
	ContextSourceID        = "source_id"        // string: character that created the effect
	ContextEffectID        = "effect_id"        // string: active effect ID (durational only)
	ContextEffectName      = "effect_name"      // string: definition name
	ContextDurationPolicy  = "duration_policy"  // string: instant, has_duration, infinite
	ContextEffectLevel     = "effect_level"     // float64: spec level
	ContextTurn            = "turn"             // int: driver turn number
	ContextRejectionReason = "rejection_reason" // string: why admission failed
)
