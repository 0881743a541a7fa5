package tracking

import "time"

// Config holds tuning parameters for the interaction side of the pipeline.
type Config struct {
	ZoneFilterSize   int           // Window size for the zone mode filter
	TouchThresholdCm float64       // Max |z| standoff from the map plane to count as touching
	DispatchCooldown time.Duration // Minimum gap between audio dispatches
}

// DefaultConfig returns a Config matching the printed-map defaults.
func DefaultConfig() Config {
	return Config{
		ZoneFilterSize:   10,
		TouchThresholdCm: 2.0,
		DispatchCooldown: 500 * time.Millisecond,
	}
}
