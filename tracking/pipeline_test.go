package tracking

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

// scriptedSolver distinguishes map and stylus solves by correspondence count
// and returns a fixed pose for each.
type scriptedSolver struct {
	mapPose    spatialmath.Pose
	stylusPose spatialmath.Pose
	mapPoints  int
}

func (s *scriptedSolver) Solve(model []r3.Vector, scene []r2.Point, k Intrinsics) (spatialmath.Pose, error) {
	if len(model) == s.mapPoints {
		return s.mapPose, nil
	}
	return s.stylusPose, nil
}

func TestPipeline_EndToEnd(t *testing.T) {
	// Map layout: four markers fully visible. Stylus layout: one marker.
	mapLayout := squareLayout(t, 10, 11, 12, 13)
	stylusLayout := squareLayout(t, 50)

	solver := &scriptedSolver{
		mapPose:    spatialmath.NewZeroPose(),
		stylusPose: spatialmath.NewPoseFromPoint(r3.Vector{X: 2, Y: 5, Z: 0.5}),
		mapPoints:  16,
	}

	k := testIntrinsics()
	model := NewModelLocator(mapLayout, NewPoseEstimator(solver), k)
	pointer := NewPointerLocator(stylusLayout, NewPoseEstimator(solver), k)

	img, hotspots := testZoneImage()
	zones, err := NewZoneClassifier(img, hotspots, 10.0, DefaultConfig())
	if err != nil {
		t.Fatalf("NewZoneClassifier: %v", err)
	}

	player := &countingPlayer{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	dispatcher := NewDispatcher(hotspots, player, logging.NewTestLogger(t), 500*time.Millisecond)
	dispatcher.now = clock.now
	dispatcher.lastDispatch = clock.t

	mapObs := []MarkerObservation{
		obsAt(10, 100, 100), obsAt(11, 300, 100), obsAt(12, 300, 300), obsAt(13, 100, 300),
	}
	stylusObs := []MarkerObservation{obsAt(50, 200, 200)}

	frame := func() {
		mapPose, ok := model.Locate(mapObs)
		if !ok {
			t.Fatal("map pose not found")
		}
		tip, ok := pointer.Locate(stylusObs, mapPose)
		if !ok {
			t.Fatal("pointer not found")
		}
		if zone := zones.Classify(tip); zone >= 0 {
			dispatcher.Dispatch(zone)
		}
		clock.advance(100 * time.Millisecond) // ~10fps
	}

	// Enough frames for the mode filter to settle on zone 0, then some extra
	// frames in the same zone. Exactly one cue plays.
	for i := 0; i < 15; i++ {
		frame()
	}
	if len(player.zones) != 1 {
		t.Fatalf("expected exactly one play on first zone entry, got %d", len(player.zones))
	}
	if player.zones[0] != 0 {
		t.Errorf("played zone %d, want 0", player.zones[0])
	}

	// Move the stylus across to zone 1; the second cue plays only once the
	// filter crosses over and the cooldown allows it.
	solver.stylusPose = spatialmath.NewPoseFromPoint(r3.Vector{X: 8, Y: 5, Z: 0.5})
	for i := 0; i < 15; i++ {
		frame()
	}
	if len(player.zones) != 2 {
		t.Fatalf("expected a second play after crossing zones, got %d", len(player.zones))
	}
	if player.zones[1] != 1 {
		t.Errorf("second play zone = %d, want 1", player.zones[1])
	}

	// Lifting the stylus produces no further cues.
	solver.stylusPose = spatialmath.NewPoseFromPoint(r3.Vector{X: 8, Y: 5, Z: 5})
	for i := 0; i < 15; i++ {
		frame()
	}
	if len(player.zones) != 2 {
		t.Errorf("expected no plays while hovering, got %d", len(player.zones))
	}
}
