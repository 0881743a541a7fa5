package cv

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Capture wraps a live camera. The pipeline pulls one frame per iteration; a
// failed read is end-of-stream.
type Capture struct {
	cap *gocv.VideoCapture
}

// OpenCapture opens the camera at the given device index and applies the
// standard tuning: 1080p frames, fixed focus at zero so the printed map stays
// sharp at working distance.
func OpenCapture(device int) (*Capture, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("opening camera %d: %w", device, err)
	}
	cap.Set(gocv.VideoCaptureFrameHeight, 1080)
	cap.Set(gocv.VideoCaptureFrameWidth, 1920)
	cap.Set(gocv.VideoCaptureFocus, 0)
	return &Capture{cap: cap}, nil
}

// Read pulls the next frame into dst. Returns false at end-of-stream.
func (c *Capture) Read(dst *gocv.Mat) bool {
	if !c.cap.IsOpened() {
		return false
	}
	return c.cap.Read(dst)
}

// Close releases the camera.
func (c *Capture) Close() error {
	return c.cap.Close()
}

// Port describes one probed camera device.
type Port struct {
	Index  int
	Width  float64
	Height float64
	Reads  bool
}

// ProbePorts tests camera device indices in order and reports which ones open
// and read frames. Probing stops once maxFailures indices in total have failed
// to open.
func ProbePorts(maxFailures int) []Port {
	var ports []Port
	failures := 0
	for dev := 0; failures < maxFailures; dev++ {
		cap, err := gocv.OpenVideoCapture(dev)
		if err != nil {
			failures++
			continue
		}

		img := gocv.NewMat()
		reads := cap.Read(&img)
		ports = append(ports, Port{
			Index:  dev,
			Width:  cap.Get(gocv.VideoCaptureFrameWidth),
			Height: cap.Get(gocv.VideoCaptureFrameHeight),
			Reads:  reads,
		})
		img.Close()
		cap.Close()
	}
	return ports
}
