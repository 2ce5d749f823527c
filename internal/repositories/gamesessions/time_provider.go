package gamesessions

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions TimeProvider

// TimeProvider supplies the clock used to stamp session writes
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock
type RealTimeProvider struct{}

// Now returns the current time
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
