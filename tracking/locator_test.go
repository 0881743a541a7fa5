package tracking

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

func TestModelLocator_NoMarkers(t *testing.T) {
	layout := squareLayout(t, 1, 2, 3, 4)
	solver := &stubSolver{pose: spatialmath.NewZeroPose()}
	loc := NewModelLocator(layout, NewPoseEstimator(solver), testIntrinsics())

	if _, ok := loc.Locate(nil); ok {
		t.Error("expected no pose for empty frame")
	}
	if _, ok := loc.Locate([]MarkerObservation{obsAt(77, 0, 0)}); ok {
		t.Error("expected no pose when only unknown markers are visible")
	}
	if solver.calls != 0 {
		t.Error("solver must not run when nothing matched")
	}
}

func TestModelLocator_EstimatorFailureIsAbsence(t *testing.T) {
	layout := squareLayout(t, 1)
	solver := &stubSolver{err: errors.New("singular configuration")}
	loc := NewModelLocator(layout, NewPoseEstimator(solver), testIntrinsics())

	if _, ok := loc.Locate([]MarkerObservation{obsAt(1, 50, 50)}); ok {
		t.Error("solver failure must surface as routine absence, not a pose")
	}
}

func TestModelLocator_Success(t *testing.T) {
	layout := squareLayout(t, 1)
	want := spatialmath.NewPoseFromPoint(r3.Vector{X: 5, Y: -3, Z: 40})
	loc := NewModelLocator(layout, NewPoseEstimator(&stubSolver{pose: want}), testIntrinsics())

	pose, ok := loc.Locate([]MarkerObservation{obsAt(1, 50, 50)})
	if !ok {
		t.Fatal("expected a pose")
	}
	if !spatialmath.PoseAlmostEqual(pose, want) {
		t.Errorf("pose = %v, want %v", pose, want)
	}
}

func TestPointerLocator_IdentityMapPose(t *testing.T) {
	// With the map pose at identity, the map frame and camera frame coincide,
	// so the tip position equals the stylus translation exactly.
	layout := squareLayout(t, 9)
	stylusPose := spatialmath.NewPoseFromPoint(r3.Vector{X: 4, Y: 7, Z: 1.5})
	loc := NewPointerLocator(layout, NewPoseEstimator(&stubSolver{pose: stylusPose}), testIntrinsics())

	tip, ok := loc.Locate([]MarkerObservation{obsAt(9, 200, 200)}, spatialmath.NewZeroPose())
	if !ok {
		t.Fatal("expected a tip position")
	}
	if tip.Sub(r3.Vector{X: 4, Y: 7, Z: 1.5}).Norm() > 1e-12 {
		t.Errorf("tip = %v, want {4 7 1.5}", tip)
	}
}

func TestPointerLocator_RotatedMapPose(t *testing.T) {
	// Map rotated 90° about Z and translated to (1,2,3); stylus at (1,2,8) in
	// camera space. The offset (0,0,5) lies on the rotation axis, so the
	// map-local tip is (0,0,5).
	layout := squareLayout(t, 9)
	stylusPose := spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 8})
	loc := NewPointerLocator(layout, NewPoseEstimator(&stubSolver{pose: stylusPose}), testIntrinsics())

	mapPose := spatialmath.NewPose(
		r3.Vector{X: 1, Y: 2, Z: 3},
		&spatialmath.R4AA{Theta: math.Pi / 2, RZ: 1},
	)

	tip, ok := loc.Locate([]MarkerObservation{obsAt(9, 200, 200)}, mapPose)
	if !ok {
		t.Fatal("expected a tip position")
	}
	want := r3.Vector{X: 0, Y: 0, Z: 5}
	if tip.Sub(want).Norm() > 1e-9 {
		t.Errorf("tip = %v, want %v", tip, want)
	}
}

func TestPointerLocator_NoStylus(t *testing.T) {
	layout := squareLayout(t, 9)
	loc := NewPointerLocator(layout, NewPoseEstimator(&stubSolver{pose: spatialmath.NewZeroPose()}), testIntrinsics())

	if _, ok := loc.Locate(nil, spatialmath.NewZeroPose()); ok {
		t.Error("expected no tip when no stylus markers are observed")
	}
}
