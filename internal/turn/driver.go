// Package turn drives characters through discrete turns: scripted effect
// applications, one tick per character and an optional snapshot per turn
package turn

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/gameplay-effects/internal/effects"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots"
)

// Action applies Effect from Source to Target at the start of Turn.
// An empty Source applies the effect without a source at Level, or 1.
type Action struct {
	Turn   int
	Source string
	Target string
	Effect *effects.Definition
	Level  *float64
}

// Script is the ordered list of scripted actions
type Script []Action

// ForTurn returns the actions of one turn in script order
func (s Script) ForTurn(turn int) []Action {
	var out []Action
	for _, action := range s {
		if action.Turn == turn {
			out = append(out, action)
		}
	}
	return out
}

// TurnReport summarizes one turn
type TurnReport struct {
	Turn     int
	Applied  int
	Rejected int
	Expired  int
}

// DriverConfig holds the dependencies of a Driver
type DriverConfig struct {
	Characters []*effects.Character
	Script     Script
	Snapshots  snapshots.Repository // optional
	EventBus   events.Bus           // optional
}

// Driver runs turns. RunTurn must not be called concurrently.
type Driver struct {
	characters []*effects.Character
	byID       map[string]*effects.Character
	script     Script
	snapshots  snapshots.Repository
	eventBus   events.Bus
	turn       int
}

// NewDriver creates a driver and checks that the script only references
// known characters
func NewDriver(cfg *DriverConfig) (*Driver, error) {
	if cfg == nil {
		return nil, engineerr.InvalidArgument("driver config is required")
	}

	byID := make(map[string]*effects.Character, len(cfg.Characters))
	for _, c := range cfg.Characters {
		if c == nil {
			return nil, engineerr.InvalidArgument("character cannot be nil")
		}
		if _, exists := byID[c.ID()]; exists {
			return nil, engineerr.InvalidArgumentf("duplicate character %s", c.ID())
		}
		byID[c.ID()] = c
	}

	for i, action := range cfg.Script {
		if action.Effect == nil {
			return nil, engineerr.InvalidArgumentf("script action %d has no effect", i)
		}
		if _, ok := byID[action.Target]; !ok {
			return nil, engineerr.NotFoundf("script action %d targets unknown character %q", i, action.Target)
		}
		if action.Source == "" {
			continue
		}
		if _, ok := byID[action.Source]; !ok {
			return nil, engineerr.NotFoundf("script action %d has unknown source %q", i, action.Source)
		}
	}

	return &Driver{
		characters: cfg.Characters,
		byID:       byID,
		script:     cfg.Script,
		snapshots:  cfg.Snapshots,
		eventBus:   cfg.EventBus,
	}, nil
}

// Turn returns the number of the last completed turn
func (d *Driver) Turn() int {
	return d.turn
}

// Characters returns the driven characters in configuration order
func (d *Driver) Characters() []*effects.Character {
	return d.characters
}

// RunTurn advances the simulation by one turn
func (d *Driver) RunTurn(ctx context.Context) (*TurnReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.turn++
	report := &TurnReport{Turn: d.turn}
	d.emit(events.OnTurnStart)

	for _, action := range d.script.ForTurn(d.turn) {
		applied, err := d.apply(action)
		if err != nil {
			return nil, engineerr.Wrapf(err, "turn %d: %s on %s", d.turn, action.Effect.Name, action.Target).
				WithMeta("turn", d.turn)
		}
		if applied {
			report.Applied++
		} else {
			log.Printf("[TURN] Turn %d: %s rejected by %s", d.turn, action.Effect.Name, action.Target)
			report.Rejected++
		}
	}

	expired, err := d.tickAll(ctx)
	if err != nil {
		return nil, engineerr.Wrapf(err, "turn %d tick failed", d.turn).WithMeta("turn", d.turn)
	}
	report.Expired = expired

	if err := d.saveSnapshots(ctx); err != nil {
		return nil, err
	}

	d.emit(events.OnTurnEnd)
	return report, nil
}

// Run runs n turns and stops at the first error
func (d *Driver) Run(ctx context.Context, n int) ([]*TurnReport, error) {
	reports := make([]*TurnReport, 0, n)
	for i := 0; i < n; i++ {
		report, err := d.RunTurn(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (d *Driver) apply(action Action) (bool, error) {
	target := d.byID[action.Target]

	var (
		spec *effects.Spec
		err  error
	)
	switch source := d.byID[action.Source]; {
	case source == nil:
		level := 1.0
		if action.Level != nil {
			level = *action.Level
		}
		spec, err = effects.NewSpec(action.Effect, nil, level)
	case action.Level != nil:
		spec, err = source.MakeOutgoingSpecAtLevel(action.Effect, *action.Level)
	default:
		spec, err = source.MakeOutgoingSpec(action.Effect)
	}
	if err != nil {
		return false, err
	}

	return target.ApplyToSelf(spec)
}

// tickAll ticks every character concurrently. Characters share no mutable
// state so each goroutine owns exactly one character.
func (d *Driver) tickAll(ctx context.Context) (int, error) {
	expired := make([]int, len(d.characters))

	g, _ := errgroup.WithContext(ctx)
	for i, c := range d.characters {
		i, c := i, c
		g.Go(func() error {
			before := len(c.ActiveEffects())
			err := c.Tick()
			expired[i] = before - len(c.ActiveEffects())
			if err != nil {
				return engineerr.Wrapf(err, "character %s", c.ID()).WithMeta("character_id", c.ID())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range expired {
		total += n
	}
	return total, nil
}

func (d *Driver) saveSnapshots(ctx context.Context) error {
	if d.snapshots == nil {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range d.characters {
		snapshot := snapshots.Capture(d.turn, c)
		g.Go(func() error {
			return d.snapshots.Save(gctx, snapshot)
		})
	}
	if err := g.Wait(); err != nil {
		return engineerr.Wrapf(err, "turn %d snapshot failed", d.turn).WithMeta("turn", d.turn)
	}
	return nil
}

func (d *Driver) emit(eventType events.EventType) {
	if d.eventBus == nil {
		return
	}

	event := events.NewGameEvent(eventType).WithContext(events.ContextTurn, d.turn)
	if err := d.eventBus.Emit(event); err != nil {
		log.Printf("[TURN] Failed to emit %s for turn %d: %v", eventType, d.turn, err)
	}
}
