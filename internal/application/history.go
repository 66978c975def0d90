package application

import "time"

type VolumeSample struct {
	At     time.Time
	Volume float64
}

// VolumeHistory is a per-address, time-ordered log of five-minute volume samples.
// Not safe for concurrent use; the scanner serialises refreshes per category.
type VolumeHistory struct {
	retention time.Duration
	lookback  time.Duration
	samples   map[string][]VolumeSample
}

func NewVolumeHistory(retention, lookback time.Duration) *VolumeHistory {
	return &VolumeHistory{
		retention: retention,
		lookback:  lookback,
		samples:   map[string][]VolumeSample{},
	}
}

// Record appends a sample and drops everything older than now-retention.
// A sample stamped before the latest one is clamped to keep timestamps non-decreasing.
func (h *VolumeHistory) Record(addr string, volume float64, now time.Time) {
	list := h.samples[addr]
	at := now
	if n := len(list); n > 0 && at.Before(list[n-1].At) {
		at = list[n-1].At
	}
	list = append(list, VolumeSample{At: at, Volume: volume})

	cutoff := now.Add(-h.retention)
	drop := 0
	for drop < len(list) && list[drop].At.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		list = append([]VolumeSample(nil), list[drop:]...)
	}
	if len(list) == 0 {
		delete(h.samples, addr)
		return
	}
	h.samples[addr] = list
}

// LookupDelta compares the latest sample against the most recent one at or before
// now-lookback. Nil means the history cannot support a measurement.
func (h *VolumeHistory) LookupDelta(addr string, now time.Time) *float64 {
	list := h.samples[addr]
	if len(list) < 2 {
		return nil
	}
	target := now.Add(-h.lookback)
	for i := len(list) - 1; i >= 0; i-- {
		prev := list[i]
		if prev.At.After(target) {
			continue
		}
		if prev.Volume <= 0 {
			return nil
		}
		latest := list[len(list)-1].Volume
		d := (latest - prev.Volume) / prev.Volume
		return &d
	}
	return nil
}

// Samples returns a copy of the samples held for addr.
func (h *VolumeHistory) Samples(addr string) []VolumeSample {
	return append([]VolumeSample(nil), h.samples[addr]...)
}

func (h *VolumeHistory) Len() int { return len(h.samples) }
