package snapshots

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots Repository

// Repository persists per-turn character snapshots
type Repository interface {
	// Save stores a snapshot, assigning its ID and CreatedAt
	Save(ctx context.Context, snapshot *Snapshot) error
	// Get returns the snapshot of a character at a turn
	Get(ctx context.Context, characterID string, turn int) (*Snapshot, error)
	// ListByCharacter returns every stored snapshot of a character ordered by turn
	ListByCharacter(ctx context.Context, characterID string) ([]*Snapshot, error)
	// DeleteByCharacter removes every snapshot of a character
	DeleteByCharacter(ctx context.Context, characterID string) error
}
