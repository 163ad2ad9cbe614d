package volume

import "math"

// volumeNorm is the raw value the sound server treats as 100%.
const volumeNorm = 0x10000

const (
	defaultSink   = "@DEFAULT_SINK@"
	defaultSource = "@DEFAULT_SOURCE@"
)

// rawToPercent converts a raw server volume to a percentage.
func rawToPercent(raw uint32) float64 {
	return float64(raw) * 100 / volumeNorm
}

// percentToRaw converts a percentage to a raw server volume.
// Negative and NaN inputs map to silence.
func percentToRaw(pct float64) uint32 {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	raw := math.Round(pct * volumeNorm / 100)
	if raw > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(raw)
}
