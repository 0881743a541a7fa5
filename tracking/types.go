package tracking

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// MarkerObservation is one fiducial marker found in a camera frame: its decoded
// ID and the four corner pixels in detector order (clockwise from top-left).
type MarkerObservation struct {
	ID      int
	Corners [4]r2.Point
}

// LayoutMarker is one marker of a printed layout: its ID and the four corner
// positions in the layout's own model space, in centimeters, in the same corner
// order the detector reports.
type LayoutMarker struct {
	ID      int
	Corners [4]r3.Vector
}

// MarkerLayout is the fixed, ordered marker geometry of a printed surface (the
// map sheet or the stylus). Immutable after construction.
type MarkerLayout struct {
	markers []LayoutMarker
	slots   map[int]int // marker ID -> position in markers
}

// NewMarkerLayout builds a layout from an ordered marker list. Marker IDs must
// be unique within a layout.
func NewMarkerLayout(markers []LayoutMarker) (MarkerLayout, error) {
	slots := make(map[int]int, len(markers))
	for i, m := range markers {
		if _, ok := slots[m.ID]; ok {
			return MarkerLayout{}, ErrDuplicateMarkerID
		}
		slots[m.ID] = i
	}
	return MarkerLayout{markers: markers, slots: slots}, nil
}

// NumMarkers returns the number of markers in the layout.
func (l MarkerLayout) NumMarkers() int {
	return len(l.markers)
}

// ModelPoints returns the layout's corner positions flattened into a single
// slice of 4×NumMarkers points, in layout order.
func (l MarkerLayout) ModelPoints() []r3.Vector {
	pts := make([]r3.Vector, 0, 4*len(l.markers))
	for _, m := range l.markers {
		pts = append(pts, m.Corners[0], m.Corners[1], m.Corners[2], m.Corners[3])
	}
	return pts
}

// slot returns the position of the marker with the given ID, if present.
func (l MarkerLayout) slot(id int) (int, bool) {
	i, ok := l.slots[id]
	return i, ok
}

// Correspondences holds matched 3D model points and 2D scene points as parallel
// arrays. Scene[i] is meaningful only where Valid[i] is true.
type Correspondences struct {
	Model []r3.Vector
	Scene []r2.Point
	Valid []bool
}

// Intrinsics holds pinhole camera parameters. Lens distortion is assumed zero
// throughout the pipeline.
type Intrinsics struct {
	Fx float64
	Fy float64
	Cx float64
	Cy float64
}

// Hotspot is one semantic zone of the map: its flat reference color in the zone
// image (RGB) and the spoken description. A hotspot's position in the registry
// slice is its zone ID.
type Hotspot struct {
	Color       [3]uint8
	Description string
}

// PnPSolver recovers a model-to-camera pose from N≥4 3D–2D correspondences
// under a zero-distortion pinhole model. Implementations are external numeric
// collaborators (see the cv package).
type PnPSolver interface {
	Solve(model []r3.Vector, scene []r2.Point, k Intrinsics) (spatialmath.Pose, error)
}

// Player triggers non-blocking playback of the audio cue for a zone.
type Player interface {
	Play(zone int) error
}
