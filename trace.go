package camio

import (
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/pointcloud"
)

// TipTrace accumulates the stylus tip trajectory (map-local centimeters) over
// a session and writes it out as a PCD file. Useful for reviewing how a user
// explored the map.
type TipTrace struct {
	path  string
	cloud pointcloud.PointCloud
}

// NewTipTrace creates a trace that will be written to the given path.
func NewTipTrace(path string) *TipTrace {
	return &TipTrace{
		path:  path,
		cloud: pointcloud.NewBasicEmpty(),
	}
}

// Record adds one tip position to the trace. Duplicate positions collapse into
// a single point.
func (t *TipTrace) Record(tip r3.Vector) {
	if err := t.cloud.Set(tip, nil); err != nil {
		// Setting a plain point into a basic cloud does not fail in
		// practice; nothing useful to do beyond dropping the sample.
		return
	}
}

// Size returns the number of distinct recorded positions.
func (t *TipTrace) Size() int {
	return t.cloud.Size()
}

// Save writes the trace to its PCD file in binary format.
func (t *TipTrace) Save() error {
	file, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := pointcloud.ToPCD(t.cloud, file, pointcloud.PCDBinary); err != nil {
		return fmt.Errorf("write PCD: %w", err)
	}

	return nil
}
