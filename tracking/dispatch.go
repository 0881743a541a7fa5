package tracking

import (
	"time"

	"go.viam.com/rdk/logging"
)

// Dispatcher turns stabilized zone IDs into audio cues: at most one cue per
// zone entry, with a single shared cooldown between any two dispatches. The
// cooldown is not per-zone; only time since the last dispatch matters.
type Dispatcher struct {
	hotspots []Hotspot
	player   Player
	logger   logging.Logger
	cooldown time.Duration

	lastDescription string
	lastDispatch    time.Time
	now             func() time.Time
}

// NewDispatcher creates a Dispatcher over the hotspot registry. The cooldown
// clock starts at construction, so the first cue plays no earlier than one
// cooldown after startup.
func NewDispatcher(hotspots []Hotspot, player Player, logger logging.Logger, cooldown time.Duration) *Dispatcher {
	d := &Dispatcher{
		hotspots: hotspots,
		player:   player,
		logger:   logger,
		cooldown: cooldown,
		now:      time.Now,
	}
	d.lastDispatch = d.now()
	return d
}

// Dispatch plays the zone's audio cue if the zone's description differs from
// the last dispatched one and the cooldown has elapsed; otherwise it is a
// no-op. Playback failure is logged and state still advances, so the same
// transition is not retried — the user simply misses that cue.
func (d *Dispatcher) Dispatch(zone int) {
	if zone < 0 || zone >= len(d.hotspots) {
		return
	}

	description := d.hotspots[zone].Description
	if description == d.lastDescription {
		return
	}
	if d.now().Sub(d.lastDispatch) <= d.cooldown {
		return
	}

	if err := d.player.Play(zone); err != nil {
		d.logger.Warnf("Cannot play cue for zone %d (%s): %v", zone, description, err)
	}
	d.lastDispatch = d.now()
	d.lastDescription = description
}
