package modelcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
)

const mapJSON = `{
  "model": {
    "filename": "UkraineMap.png",
    "pixels_per_cm": 23.6,
    "positioningData": {
      "arucoType": "DICT_4X4_50",
      "arucoCodes": [
        {"id": 0, "position": [[0, 0, 0], [2, 0, 0], [2, 2, 0], [0, 2, 0]]},
        {"id": 1, "position": [[20, 0, 0], [22, 0, 0], [22, 2, 0], [20, 2, 0]]}
      ]
    },
    "hotspots": [
      {"color": [255, 0, 0], "textDescription": "Kyiv", "audioDescription": "sounds/kyiv.wav"},
      {"color": [0, 0, 255], "textDescription": "Black Sea", "audioDescription": "sounds/black_sea.wav"}
    ]
  }
}`

const stylusJSON = `{
  "stylus": {
    "positioningData": {
      "arucoType": "DICT_4X4_50",
      "arucoCodes": [
        {"id": 40, "position": [[0, 0, 10], [2, 0, 10], [2, 2, 10], [0, 2, 10]]}
      ]
    }
  }
}`

const cameraJSON = `{
  "focal_length_x": 1400.5,
  "focal_length_y": 1401.2,
  "camera_center_x": 960.0,
  "camera_center_y": 540.0
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadMapModel(t *testing.T) {
	model, err := LoadMapModel(writeTemp(t, "map.json", mapJSON))
	if err != nil {
		t.Fatalf("LoadMapModel: %v", err)
	}

	if model.Filename != "UkraineMap.png" {
		t.Errorf("filename = %q", model.Filename)
	}
	if model.PixelsPerCm != 23.6 {
		t.Errorf("pixels_per_cm = %v", model.PixelsPerCm)
	}
	if model.PositioningData.ArucoType != "DICT_4X4_50" {
		t.Errorf("arucoType = %q", model.PositioningData.ArucoType)
	}

	layout, err := model.PositioningData.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if layout.NumMarkers() != 2 {
		t.Errorf("markers = %d, want 2", layout.NumMarkers())
	}
	pts := layout.ModelPoints()
	if pts[4] != (r3.Vector{X: 20, Y: 0, Z: 0}) {
		t.Errorf("second marker first corner = %v, want {20 0 0}", pts[4])
	}

	hotspots := model.TrackingHotspots()
	if len(hotspots) != 2 {
		t.Fatalf("hotspots = %d, want 2", len(hotspots))
	}
	if hotspots[1].Description != "Black Sea" || hotspots[1].Color != [3]uint8{0, 0, 255} {
		t.Errorf("hotspot 1 = %+v", hotspots[1])
	}

	paths := model.AudioPaths()
	if len(paths) != 2 || paths[0] != "sounds/kyiv.wav" {
		t.Errorf("audio paths = %v", paths)
	}
}

func TestLoadStylusModel(t *testing.T) {
	stylus, err := LoadStylusModel(writeTemp(t, "stylus.json", stylusJSON))
	if err != nil {
		t.Fatalf("LoadStylusModel: %v", err)
	}

	layout, err := stylus.PositioningData.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if layout.NumMarkers() != 1 {
		t.Errorf("markers = %d, want 1", layout.NumMarkers())
	}
	if layout.ModelPoints()[0] != (r3.Vector{X: 0, Y: 0, Z: 10}) {
		t.Errorf("first corner = %v, want {0 0 10}", layout.ModelPoints()[0])
	}
}

func TestLoadCameraParameters(t *testing.T) {
	params, err := LoadCameraParameters(writeTemp(t, "camera_parameters.json", cameraJSON))
	if err != nil {
		t.Fatalf("LoadCameraParameters: %v", err)
	}

	k := params.Intrinsics()
	if k.Fx != 1400.5 || k.Fy != 1401.2 || k.Cx != 960.0 || k.Cy != 540.0 {
		t.Errorf("intrinsics = %+v", k)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := LoadMapModel(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing map model file")
	}
	if _, err := LoadStylusModel(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing stylus model file")
	}
	if _, err := LoadCameraParameters(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing camera parameters file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"model": [1, 2, 3]}`)
	if _, err := LoadMapModel(path); err == nil {
		t.Error("expected error for malformed map model")
	}

	path = writeTemp(t, "nokey.json", `{}`)
	if _, err := LoadMapModel(path); err == nil {
		t.Error("expected error when \"model\" key is missing")
	}
	if _, err := LoadStylusModel(path); err == nil {
		t.Error("expected error when \"stylus\" key is missing")
	}
}

func TestLayout_DuplicateMarkerID(t *testing.T) {
	pd := PositioningData{
		ArucoType: "DICT_4X4_50",
		ArucoCodes: []ArucoCode{
			{ID: 1}, {ID: 1},
		},
	}
	if _, err := pd.Layout(); err == nil {
		t.Error("expected error for duplicate marker IDs")
	}
}
