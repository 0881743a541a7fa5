package cv

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gocv.io/x/gocv"

	"github.com/rcrabb-ski/simple-camio/tracking"
)

// Solver implements tracking.PnPSolver via OpenCV's iterative solvePnP under a
// zero-distortion pinhole model.
type Solver struct{}

// Solve recovers the model-to-camera pose from the given correspondences. The
// returned pose carries the solver's Rodrigues rotation as an axis-angle
// orientation.
func (Solver) Solve(model []r3.Vector, scene []r2.Point, k tracking.Intrinsics) (spatialmath.Pose, error) {
	objPts := make([]gocv.Point3f, len(model))
	for i, p := range model {
		objPts[i] = gocv.Point3f{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
	}
	imgPts := make([]gocv.Point2f, len(scene))
	for i, p := range scene {
		imgPts[i] = gocv.Point2f{X: float32(p.X), Y: float32(p.Y)}
	}

	objVec := gocv.NewPoint3fVectorFromPoints(objPts)
	defer objVec.Close()
	imgVec := gocv.NewPoint2fVectorFromPoints(imgPts)
	defer imgVec.Close()

	camera := cameraMatrix(k)
	defer camera.Close()
	dist := gocv.NewMat() // empty = zero distortion
	defer dist.Close()

	rvec := gocv.NewMat()
	defer rvec.Close()
	tvec := gocv.NewMat()
	defer tvec.Close()

	if ok := gocv.SolvePnP(objVec, imgVec, camera, dist, &rvec, &tvec, false, 0); !ok {
		return nil, fmt.Errorf("solvePnP did not converge")
	}

	translation := r3.Vector{
		X: tvec.GetDoubleAt(0, 0),
		Y: tvec.GetDoubleAt(1, 0),
		Z: tvec.GetDoubleAt(2, 0),
	}
	rotation := r3.Vector{
		X: rvec.GetDoubleAt(0, 0),
		Y: rvec.GetDoubleAt(1, 0),
		Z: rvec.GetDoubleAt(2, 0),
	}

	// OpenCV reports success in some near-singular configurations; reject
	// poses that came back non-finite.
	if !validTranslation(translation) {
		return nil, fmt.Errorf("solvePnP returned a non-finite pose")
	}

	return spatialmath.NewPose(translation, orientationFromRodrigues(rotation)), nil
}

// orientationFromRodrigues converts a Rodrigues rotation vector (axis scaled
// by angle) into a spatialmath orientation.
func orientationFromRodrigues(rvec r3.Vector) spatialmath.Orientation {
	theta := rvec.Norm()
	if theta < 1e-12 {
		return spatialmath.NewZeroOrientation()
	}
	return &spatialmath.R4AA{
		Theta: theta,
		RX:    rvec.X / theta,
		RY:    rvec.Y / theta,
		RZ:    rvec.Z / theta,
	}
}

// cameraMatrix builds the 3×3 pinhole intrinsic matrix for the solver.
func cameraMatrix(k tracking.Intrinsics) gocv.Mat {
	m := gocv.Zeros(3, 3, gocv.MatTypeCV64F)
	m.SetDoubleAt(0, 0, k.Fx)
	m.SetDoubleAt(0, 2, k.Cx)
	m.SetDoubleAt(1, 1, k.Fy)
	m.SetDoubleAt(1, 2, k.Cy)
	m.SetDoubleAt(2, 2, 1)
	return m
}

func validTranslation(t r3.Vector) bool {
	return !math.IsNaN(t.X) && !math.IsNaN(t.Y) && !math.IsNaN(t.Z) &&
		!math.IsInf(t.X, 0) && !math.IsInf(t.Y, 0) && !math.IsInf(t.Z, 0)
}
