package tracking

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/mat"
)

// minCorrespondences is the PnP minimum; the estimator always passes the full
// matched set through for robustness rather than the theoretical minimum.
const minCorrespondences = 4

// PoseEstimator marshals matched correspondences into the external PnP solver
// and rejects under-determined inputs before the solver ever sees them.
type PoseEstimator struct {
	solver PnPSolver
}

// NewPoseEstimator creates a PoseEstimator backed by the given solver.
func NewPoseEstimator(solver PnPSolver) *PoseEstimator {
	return &PoseEstimator{solver: solver}
}

// Estimate recovers the model-to-camera pose from the valid rows of the
// correspondence set. Fewer than four valid rows, or a coincident/collinear
// model point set, yields ErrInsufficientCorrespondences; a solver that does
// not converge yields ErrSolverFailure.
func (e *PoseEstimator) Estimate(c Correspondences, k Intrinsics) (spatialmath.Pose, error) {
	model := make([]r3.Vector, 0, len(c.Model))
	scene := make([]r2.Point, 0, len(c.Scene))
	for i, ok := range c.Valid {
		if !ok {
			continue
		}
		model = append(model, c.Model[i])
		scene = append(scene, c.Scene[i])
	}

	if len(model) < minCorrespondences {
		return nil, ErrInsufficientCorrespondences
	}
	if degenerate(model) {
		return nil, ErrInsufficientCorrespondences
	}

	pose, err := e.solver.Solve(model, scene, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSolverFailure, err)
	}
	return pose, nil
}

// degenerate reports whether the points span fewer than two dimensions after
// centering (all coincident or collinear), which leaves PnP underdetermined.
func degenerate(pts []r3.Vector) bool {
	var centroid r3.Vector
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1.0 / float64(len(pts)))

	m := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		d := p.Sub(centroid)
		m.Set(i, 0, d.X)
		m.Set(i, 1, d.Y)
		m.Set(i, 2, d.Z)
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return true
	}
	vals := svd.Values(nil)
	if vals[0] == 0 {
		return true
	}

	rank := 0
	for _, v := range vals {
		if v > 1e-9*vals[0] {
			rank++
		}
	}
	return rank < 2
}
