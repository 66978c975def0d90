package application

import (
	"time"

	"pairscan-service/internal/domain"
)

// Recorder receives scanner telemetry.
type Recorder interface {
	RefreshDone(category domain.Category, took time.Duration, err error)
	CacheHit(category domain.Category)
	AlertsEmitted(category domain.Category, n int)
	StoreSize(category domain.Category, n int)
}

type NoopRecorder struct{}

func (NoopRecorder) RefreshDone(domain.Category, time.Duration, error) {}
func (NoopRecorder) CacheHit(domain.Category)                          {}
func (NoopRecorder) AlertsEmitted(domain.Category, int)                {}
func (NoopRecorder) StoreSize(domain.Category, int)                    {}
