package tracking

import "github.com/golang/geo/r2"

// MatchCorrespondences aligns a frame's marker observations against a layout's
// fixed marker ordering. Each observed marker whose ID exists in the layout
// fills the four scene-point slots reserved for that marker and marks them
// valid; observations with IDs outside the layout are ignored. If the detector
// reports the same ID twice in one frame, the last observation wins.
//
// The second return value is false when no layout marker was observed at all,
// signaling the caller to skip pose estimation for this layout.
func MatchCorrespondences(obs []MarkerObservation, layout MarkerLayout) (Correspondences, bool) {
	n := 4 * layout.NumMarkers()
	c := Correspondences{
		Model: layout.ModelPoints(),
		Scene: make([]r2.Point, n),
		Valid: make([]bool, n),
	}

	anyValid := false
	for _, o := range obs {
		slot, ok := layout.slot(o.ID)
		if !ok {
			continue
		}
		for j := 0; j < 4; j++ {
			c.Scene[4*slot+j] = o.Corners[j]
			c.Valid[4*slot+j] = true
		}
		anyValid = true
	}

	return c, anyValid
}
