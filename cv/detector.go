// Package cv adapts the OpenCV bindings (gocv) to the tracking pipeline:
// marker detection, PnP solving, video capture, and the debug overlay. All
// cgo-facing code lives here so the tracking package stays pure Go.
package cv

import (
	"fmt"

	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"

	"github.com/rcrabb-ski/simple-camio/tracking"
)

// cornerRefineSubpix is cv::aruco::CORNER_REFINE_SUBPIX.
const cornerRefineSubpix = 1

// arucoDictionaries maps the model file's dictionary names to gocv codes.
// The set matches what the model authoring tools emit.
var arucoDictionaries = map[string]gocv.ArucoDictionaryCode{
	"DICT_4X4_50":   gocv.ArucoDict4x4_50,
	"DICT_4X4_100":  gocv.ArucoDict4x4_100,
	"DICT_4X4_250":  gocv.ArucoDict4x4_250,
	"DICT_4X4_1000": gocv.ArucoDict4x4_1000,
	"DICT_5X5_50":   gocv.ArucoDict5x5_50,
	"DICT_5X5_100":  gocv.ArucoDict5x5_100,
	"DICT_5X5_250":  gocv.ArucoDict5x5_250,
}

// Detector wraps an ArUco detector configured with subpixel corner refinement
// for one marker dictionary.
type Detector struct {
	detector gocv.ArucoDetector
}

// NewDetector creates a Detector for the named ArUco dictionary. Unknown
// dictionary names are a configuration error.
func NewDetector(arucoType string) (*Detector, error) {
	code, ok := arucoDictionaries[arucoType]
	if !ok {
		return nil, fmt.Errorf("unknown aruco dictionary %q", arucoType)
	}

	params := gocv.NewArucoDetectorParameters()
	params.SetCornerRefinementMethod(cornerRefineSubpix)

	return &Detector{
		detector: gocv.NewArucoDetectorWithParams(gocv.GetPredefinedDictionary(code), params),
	}, nil
}

// Detect finds markers in a grayscale frame and returns them as observations.
// The rejected-candidate set from the underlying detector is discarded.
func (d *Detector) Detect(gray gocv.Mat) []tracking.MarkerObservation {
	corners, ids, _ := d.detector.DetectMarkers(gray)

	obs := make([]tracking.MarkerObservation, 0, len(ids))
	for i, id := range ids {
		if len(corners[i]) != 4 {
			continue
		}
		o := tracking.MarkerObservation{ID: id}
		for j, c := range corners[i] {
			o.Corners[j] = r2.Point{X: float64(c.X), Y: float64(c.Y)}
		}
		obs = append(obs, o)
	}
	return obs
}

// Close releases the underlying detector.
func (d *Detector) Close() error {
	return d.detector.Close()
}
