package cv

import (
	"image"
	"image/color"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gocv.io/x/gocv"

	"github.com/rcrabb-ski/simple-camio/tracking"
)

// axisLengthCm is the drawn length of each model axis in the overlay.
const axisLengthCm = 6.0

// Annotate draws the debug overlay onto a color frame: every layout model
// point back-projected through the estimated pose, plus the model's X/Y/Z axes
// anchored at its origin.
func Annotate(img *gocv.Mat, modelPoints []r3.Vector, pose spatialmath.Pose, k tracking.Intrinsics) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	for _, p := range modelPoints {
		px, ok := projectPoint(p, pose, k)
		if !ok {
			continue
		}
		gocv.Circle(img, px, 4, white, 2)
		gocv.Line(img, image.Point{X: px.X - 1, Y: px.Y}, image.Point{X: px.X + 1, Y: px.Y}, blue, 1)
		gocv.Line(img, image.Point{X: px.X, Y: px.Y - 1}, image.Point{X: px.X, Y: px.Y + 1}, blue, 1)
	}

	drawAxes(img, pose, k)
}

// drawAxes projects the model origin and its three axis endpoints and draws
// the axis lines. Z points out of the map plane toward the camera, hence the
// negative endpoint.
func drawAxes(img *gocv.Mat, pose spatialmath.Pose, k tracking.Intrinsics) {
	origin, ok := projectPoint(r3.Vector{}, pose, k)
	if !ok {
		return
	}

	axes := []struct {
		end r3.Vector
		c   color.RGBA
	}{
		{r3.Vector{X: axisLengthCm}, color.RGBA{R: 255, A: 255}},
		{r3.Vector{Y: axisLengthCm}, color.RGBA{G: 255, A: 255}},
		{r3.Vector{Z: -axisLengthCm}, color.RGBA{B: 255, A: 255}},
	}
	for _, a := range axes {
		end, ok := projectPoint(a.end, pose, k)
		if !ok {
			continue
		}
		gocv.Line(img, origin, end, a.c, 5)
	}
}

// projectPoint transforms a model-space point through the pose and projects it
// with the pinhole intrinsics. Points at or behind the camera plane are not
// drawable.
func projectPoint(p r3.Vector, pose spatialmath.Pose, k tracking.Intrinsics) (image.Point, bool) {
	q := spatialmath.Compose(pose, spatialmath.NewPoseFromPoint(p)).Point()
	if q.Z <= 1e-6 {
		return image.Point{}, false
	}
	return image.Point{
		X: int(k.Fx*q.X/q.Z + k.Cx),
		Y: int(k.Fy*q.Y/q.Z + k.Cy),
	}, true
}
