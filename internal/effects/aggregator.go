package effects

import (
	"log"

	"github.com/KirkDiggler/gameplay-effects/internal/attributes"
)

// Aggregator folds the resolved contributions of active effects into a store
type Aggregator struct{}

// Aggregate applies every contribution in list order, then modifier order.
// Contributions to attributes the store does not know are skipped.
func (Aggregator) Aggregate(store attributes.Store, active []*ActiveEffect) {
	for _, entry := range active {
		for _, mod := range entry.Modifiers {
			if !store.ApplyModifier(mod.Attribute, mod.Modifier) {
				log.Printf("[EFFECTS] Effect %s (%s) modifies unknown attribute %s",
					entry.Name(), entry.ID, mod.Attribute.Name())
			}
		}
	}
}
