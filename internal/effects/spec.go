package effects

// Source is the entity an effect spec was created by
type Source interface {
	ID() string
	Level() float64
}

// runtimeState is the mutable part of a spec, owned by that spec alone
type runtimeState struct {
	durationRemaining float64
	periodTimer       float64
}

// Spec is one instantiation of a definition by a source at a level
type Spec struct {
	definition *Definition
	source     Source
	level      float64
	state      runtimeState
}

// NewSpec creates a spec from a definition. The remaining duration starts at
// the definition's duration and the periodic accumulator starts at zero.
func NewSpec(def *Definition, source Source, level float64) (*Spec, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	spec := &Spec{
		definition: def,
		source:     source,
		level:      level,
	}
	spec.state.durationRemaining = spec.initialDuration()

	return spec, nil
}

func (s *Spec) initialDuration() float64 {
	if s.definition.DurationMagnitude == nil {
		return s.definition.Duration
	}

	v, ok := s.definition.DurationMagnitude.Calculate(s)
	if !ok {
		return 0
	}
	return v * s.definition.DurationMultiplier
}

// Definition returns the definition the spec was created from
func (s *Spec) Definition() *Definition { return s.definition }

// Source returns the entity that created the spec, which may be nil
func (s *Spec) Source() Source { return s.source }

// Level returns the level used by magnitude calculations
func (s *Spec) Level() float64 { return s.level }

// DurationRemaining returns the remaining duration. Only meaningful for
// DurationHasDuration.
func (s *Spec) DurationRemaining() float64 { return s.state.durationRemaining }

// PeriodTimer returns the time accumulated since the last periodic execution
func (s *Spec) PeriodTimer() float64 { return s.state.periodTimer }

// UpdateRemainingDuration subtracts dt from the remaining duration
func (s *Spec) UpdateRemainingDuration(dt float64) {
	s.state.durationRemaining -= dt
}

// TickPeriodic advances the periodic accumulator by dt and reports whether a
// periodic execution is due. The period is subtracted, not zeroed, so
// overshoot carries into the next period.
func (s *Spec) TickPeriodic(dt float64) bool {
	if !s.definition.IsPeriodic() {
		return false
	}

	s.state.periodTimer += dt
	if s.state.periodTimer < s.definition.Period {
		return false
	}

	s.state.periodTimer -= s.definition.Period
	return true
}

// IsExpired reports whether a HasDuration spec has run out of time
func (s *Spec) IsExpired() bool {
	return s.definition.DurationPolicy == DurationHasDuration && s.state.durationRemaining <= 0
}

func (s *Spec) sourceID() string {
	if s.source == nil {
		return ""
	}
	return s.source.ID()
}
