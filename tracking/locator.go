package tracking

import (
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// ModelLocator recovers the map's pose in camera space from one frame's marker
// observations, once per frame. A false return is a routine absence (no map
// markers visible, or the estimator could not recover a pose) and means "skip
// this frame", never a fatal condition.
type ModelLocator struct {
	layout     MarkerLayout
	estimator  *PoseEstimator
	intrinsics Intrinsics
}

// NewModelLocator creates a locator for the map's fixed marker layout.
func NewModelLocator(layout MarkerLayout, estimator *PoseEstimator, k Intrinsics) *ModelLocator {
	return &ModelLocator{layout: layout, estimator: estimator, intrinsics: k}
}

// Locate matches the observations against the map layout and estimates the
// map pose in camera space.
func (l *ModelLocator) Locate(obs []MarkerObservation) (spatialmath.Pose, bool) {
	c, anyValid := MatchCorrespondences(obs, l.layout)
	if !anyValid {
		return nil, false
	}
	pose, err := l.estimator.Estimate(c, l.intrinsics)
	if err != nil {
		return nil, false
	}
	return pose, true
}

// PointerLocator recovers the stylus pose in camera space and expresses the
// stylus tip in map-local coordinates (centimeters, Z along the map normal).
type PointerLocator struct {
	layout     MarkerLayout
	estimator  *PoseEstimator
	intrinsics Intrinsics
}

// NewPointerLocator creates a locator for the stylus marker layout.
func NewPointerLocator(layout MarkerLayout, estimator *PoseEstimator, k Intrinsics) *PointerLocator {
	return &PointerLocator{layout: layout, estimator: estimator, intrinsics: k}
}

// Locate estimates the stylus pose from the observations, then inverse-
// transforms its translation through the map pose. Both poses share the camera
// frame, so composing the inverted map pose with the stylus translation yields
// the tip position in the map's own origin and axes — the frame zones are
// defined in. The stylus translation stands in for the tip location in the
// stylus marker frame.
func (l *PointerLocator) Locate(obs []MarkerObservation, mapPose spatialmath.Pose) (r3.Vector, bool) {
	c, anyValid := MatchCorrespondences(obs, l.layout)
	if !anyValid {
		return r3.Vector{}, false
	}
	stylusPose, err := l.estimator.Estimate(c, l.intrinsics)
	if err != nil {
		return r3.Vector{}, false
	}

	tipInCamera := spatialmath.NewPoseFromPoint(stylusPose.Point())
	tip := spatialmath.Compose(spatialmath.PoseInverse(mapPose), tipInCamera).Point()
	return tip, true
}
