package snapshots

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots TimeProvider

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock in UTC
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
