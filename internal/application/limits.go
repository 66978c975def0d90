package application

import "time"

// Scanner tuning.
const (
	SnapshotTTL        = 3 * time.Second
	HistoryRetention   = 10 * time.Minute
	DeltaLookback      = 5 * time.Minute
	AlertCooldown      = 5 * time.Minute
	MaxScanResults     = 200
	MaxStoredPairs     = 50
	SpikeThreshold     = 0.30
	SpikeMarketCapCeil = 100_000

	VelocityMaxAge          = 5 * 24 * time.Hour
	VelocityVolumeThreshold = 0.20
	VelocityMarketCapCeil   = 40_000
	VelocityPriceThreshold  = 0.30
)
