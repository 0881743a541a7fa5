package modelcfg

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r3"

	"github.com/rcrabb-ski/simple-camio/tracking"
)

// MapModel describes a printed tactile map: its zone reference image, the
// raster scale, the marker placement geometry, and the hotspot registry.
type MapModel struct {
	Filename        string          `json:"filename"`
	PixelsPerCm     float64         `json:"pixels_per_cm"`
	PositioningData PositioningData `json:"positioningData"`
	Hotspots        []HotspotConfig `json:"hotspots"`
}

// StylusModel describes the hand-held pointer's marker placement geometry.
type StylusModel struct {
	PositioningData PositioningData `json:"positioningData"`
}

// PositioningData holds the ArUco dictionary name and per-marker corner
// positions for one printed surface.
type PositioningData struct {
	ArucoType  string      `json:"arucoType"`
	ArucoCodes []ArucoCode `json:"arucoCodes"`
}

// ArucoCode is one marker's ID and its four corner positions (x, y, z) in the
// surface's model space, in centimeters.
type ArucoCode struct {
	ID       int           `json:"id"`
	Position [4][3]float64 `json:"position"`
}

// HotspotConfig is one semantic zone: its flat RGB color in the zone image,
// the spoken text, and the audio file played on entry.
type HotspotConfig struct {
	Color            [3]uint8 `json:"color"`
	TextDescription  string   `json:"textDescription"`
	AudioDescription string   `json:"audioDescription"`
}

// CameraParameters holds pinhole intrinsics as produced by the calibration
// script. Lens distortion is assumed zero.
type CameraParameters struct {
	FocalLengthX  float64 `json:"focal_length_x"`
	FocalLengthY  float64 `json:"focal_length_y"`
	CameraCenterX float64 `json:"camera_center_x"`
	CameraCenterY float64 `json:"camera_center_y"`
}

// LoadMapModel reads and parses a map model from a JSON file. The model sits
// under a top-level "model" key.
func LoadMapModel(path string) (*MapModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map model file: %w", err)
	}
	var wrapper struct {
		Model *MapModel `json:"model"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing map model file: %w", err)
	}
	if wrapper.Model == nil {
		return nil, fmt.Errorf("map model file %s has no \"model\" key", path)
	}
	return wrapper.Model, nil
}

// LoadStylusModel reads and parses a stylus model from a JSON file. The model
// sits under a top-level "stylus" key.
func LoadStylusModel(path string) (*StylusModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stylus model file: %w", err)
	}
	var wrapper struct {
		Stylus *StylusModel `json:"stylus"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing stylus model file: %w", err)
	}
	if wrapper.Stylus == nil {
		return nil, fmt.Errorf("stylus model file %s has no \"stylus\" key", path)
	}
	return wrapper.Stylus, nil
}

// LoadCameraParameters reads and parses camera intrinsics from a JSON file.
func LoadCameraParameters(path string) (*CameraParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading camera parameters file: %w", err)
	}
	var p CameraParameters
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing camera parameters file: %w", err)
	}
	return &p, nil
}

// Layout converts the positioning data into a marker layout, enforcing unique
// marker IDs.
func (p PositioningData) Layout() (tracking.MarkerLayout, error) {
	markers := make([]tracking.LayoutMarker, 0, len(p.ArucoCodes))
	for _, code := range p.ArucoCodes {
		m := tracking.LayoutMarker{ID: code.ID}
		for i, pos := range code.Position {
			m.Corners[i] = r3.Vector{X: pos[0], Y: pos[1], Z: pos[2]}
		}
		markers = append(markers, m)
	}
	return tracking.NewMarkerLayout(markers)
}

// TrackingHotspots converts the hotspot configs into the tracking registry.
// Slice order defines the zone IDs.
func (m *MapModel) TrackingHotspots() []tracking.Hotspot {
	hotspots := make([]tracking.Hotspot, 0, len(m.Hotspots))
	for _, h := range m.Hotspots {
		hotspots = append(hotspots, tracking.Hotspot{
			Color:       h.Color,
			Description: h.TextDescription,
		})
	}
	return hotspots
}

// AudioPaths returns the hotspot audio files in zone-ID order.
func (m *MapModel) AudioPaths() []string {
	paths := make([]string, 0, len(m.Hotspots))
	for _, h := range m.Hotspots {
		paths = append(paths, h.AudioDescription)
	}
	return paths
}

// Intrinsics converts the camera parameters into the tracking representation.
func (p *CameraParameters) Intrinsics() tracking.Intrinsics {
	return tracking.Intrinsics{
		Fx: p.FocalLengthX,
		Fy: p.FocalLengthY,
		Cx: p.CameraCenterX,
		Cy: p.CameraCenterY,
	}
}
