package snapshots

import (
	"context"
	"sort"
	"sync"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/uuid"
)

// InMemoryRepository keeps snapshots in process memory. Used when no
// Redis URL is configured.
type InMemoryRepository struct {
	mu            sync.RWMutex
	snapshots     map[string]map[int]*Snapshot
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots:     make(map[string]map[int]*Snapshot),
		timeProvider:  RealTimeProvider{},
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func (r *InMemoryRepository) Save(_ context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return engineerr.InvalidArgument("snapshot cannot be nil")
	}
	if snapshot.CharacterID == "" {
		return engineerr.InvalidArgument("snapshot character ID is required")
	}

	if snapshot.ID == "" {
		snapshot.ID = r.uuidGenerator.New()
	}
	snapshot.CreatedAt = r.timeProvider.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	turns, ok := r.snapshots[snapshot.CharacterID]
	if !ok {
		turns = make(map[int]*Snapshot)
		r.snapshots[snapshot.CharacterID] = turns
	}
	turns[snapshot.Turn] = copySnapshot(snapshot)

	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, characterID string, turn int) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[characterID][turn]
	if !ok {
		return nil, engineerr.NotFoundf("snapshot for %s turn %d not found", characterID, turn).
			WithMeta("character_id", characterID).
			WithMeta("turn", turn)
	}

	return copySnapshot(snapshot), nil
}

func (r *InMemoryRepository) ListByCharacter(_ context.Context, characterID string) ([]*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Snapshot, 0, len(r.snapshots[characterID]))
	for _, snapshot := range r.snapshots[characterID] {
		result = append(result, copySnapshot(snapshot))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Turn < result[j].Turn })

	return result, nil
}

func (r *InMemoryRepository) DeleteByCharacter(_ context.Context, characterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, characterID)
	return nil
}
