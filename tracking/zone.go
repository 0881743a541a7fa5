package tracking

import (
	"math"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/rimage"
)

// ZoneClassifier maps a map-local tip position to a zone ID via the rasterized
// zone reference image, debounces the raw per-frame classification through a
// ModeFilter, and gates on proximity to the map plane. A result of -1 means
// "no zone" or "hovering, not touching".
type ZoneClassifier struct {
	img              *rimage.Image
	hotspots         []Hotspot
	pixelsPerCm      float64
	filter           *ModeFilter
	touchThresholdCm float64
}

// NewZoneClassifier creates a classifier over the given zone reference image
// and hotspot registry. Hotspot order defines the zone IDs.
func NewZoneClassifier(img *rimage.Image, hotspots []Hotspot, pixelsPerCm float64, cfg Config) (*ZoneClassifier, error) {
	if img == nil {
		return nil, ErrNilZoneImage
	}
	return &ZoneClassifier{
		img:              img,
		hotspots:         hotspots,
		pixelsPerCm:      pixelsPerCm,
		filter:           NewModeFilter(cfg.ZoneFilterSize),
		touchThresholdCm: cfg.TouchThresholdCm,
	}, nil
}

// Classify looks up the raw zone under the tip position, pushes it through the
// mode filter, and returns the filtered zone only while the tip is within the
// touch threshold of the map plane. The filter window advances even on
// hovering frames.
func (z *ZoneClassifier) Classify(tip r3.Vector) int {
	raw := z.rawZone(tip)
	filtered := z.filter.Push(raw)

	if math.Abs(tip.Z) >= z.touchThresholdCm {
		return -1
	}
	return filtered
}

// rawZone converts map-local centimeters to zone-image pixels and matches the
// pixel color against the registry. Colors must match exactly; out-of-bounds
// positions and unmatched colors are -1.
func (z *ZoneClassifier) rawZone(tip r3.Vector) int {
	x := int(tip.X * z.pixelsPerCm)
	y := int(tip.Y * z.pixelsPerCm)
	if x < 0 || x >= z.img.Width() || y < 0 || y >= z.img.Height() {
		return -1
	}

	r, g, b := z.img.GetXY(x, y).RGB255()
	for i, h := range z.hotspots {
		if h.Color[0] == r && h.Color[1] == g && h.Color[2] == b {
			return i
		}
	}
	return -1
}
