package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
	"github.com/KirkDiggler/gameplay-effects/internal/effects"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots"
	"github.com/KirkDiggler/gameplay-effects/internal/scenario"
	"github.com/KirkDiggler/gameplay-effects/internal/turn"
)

func printTurn(out io.Writer, report *turn.TurnReport, world *scenario.World) {
	fmt.Fprintf(out, "=== Turn %d: %d applied, %d rejected, %d expired ===\n",
		report.Turn, report.Applied, report.Rejected, report.Expired)

	for _, c := range world.Characters {
		fmt.Fprintf(out, "%s (level %g)\n", c.ID(), c.Level())
		printCharacter(out, c)
	}
	fmt.Fprintln(out)
}

func printCharacter(out io.Writer, c *effects.Character) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ATTRIBUTE\tBASE\tCURRENT")
	if store, ok := c.Attributes().(*attributes.MemoryStore); ok {
		values := store.Values()
		for _, name := range store.SortedNames() {
			fmt.Fprintf(w, "  %s\t%g\t%g\n", name, values[name].Base, values[name].Current)
		}
	}
	_ = w.Flush()

	active := c.ActiveEffects()
	if len(active) == 0 {
		return
	}

	names := make([]string, 0, len(active))
	for _, a := range active {
		label := a.Name()
		if a.Spec.Definition().DurationPolicy == effects.DurationHasDuration {
			label = fmt.Sprintf("%s (%g left)", label, a.Spec.DurationRemaining())
		}
		names = append(names, label)
	}
	fmt.Fprintf(out, "  effects: %s\n", strings.Join(names, ", "))
	if granted := c.GrantedTags().Names(); len(granted) > 0 {
		fmt.Fprintf(out, "  tags: %s\n", strings.Join(granted, ", "))
	}
}

func printSnapshot(out io.Writer, s *snapshots.Snapshot) {
	fmt.Fprintf(out, "%s turn %d (saved %s)\n", s.CharacterID, s.Turn, s.CreatedAt.Format("2006-01-02 15:04:05"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ATTRIBUTE\tBASE\tCURRENT")
	for _, name := range sortedNames(s.Attributes) {
		v := s.Attributes[name]
		fmt.Fprintf(w, "  %s\t%g\t%g\n", name, v.Base, v.Current)
	}
	for _, e := range s.ActiveEffects {
		fmt.Fprintf(w, "  effect %s\t%s\tremaining %g\n", e.Name, e.Policy, e.DurationRemaining)
	}
	_ = w.Flush()
}

func sortedNames(values map[string]attributes.Value) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// eventLogger prints effect events. Characters tick in parallel so writes
// are serialized.
type eventLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func (l *eventLogger) HandleEvent(event *events.GameEvent) error {
	character, _ := event.GetStringContext(events.ContextCharacterID)
	effect, _ := event.GetStringContext(events.ContextEffectName)

	line := fmt.Sprintf("  [%s] %s on %s", event.Type, effect, character)
	if reason, ok := event.GetStringContext(events.ContextRejectionReason); ok {
		line += ": " + reason
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintln(l.out, line)
	return err
}

func (l *eventLogger) Priority() int { return 100 }
