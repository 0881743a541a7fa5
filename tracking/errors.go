package tracking

import "errors"

var (
	// ErrInsufficientCorrespondences is returned when fewer than four valid
	// correspondences remain, or the valid model points are degenerate.
	ErrInsufficientCorrespondences = errors.New("insufficient correspondences for pose estimation")

	// ErrSolverFailure is returned when the external PnP solver does not converge.
	ErrSolverFailure = errors.New("pnp solver failed")

	// ErrDuplicateMarkerID is returned when a layout declares the same marker ID twice.
	ErrDuplicateMarkerID = errors.New("duplicate marker id in layout")

	// ErrNilZoneImage is returned when a zone classifier is built without a reference image.
	ErrNilZoneImage = errors.New("zone reference image is nil")
)
