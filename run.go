package camio

import (
	"context"

	"gocv.io/x/gocv"

	"github.com/rcrabb-ski/simple-camio/cv"
)

const windowTitle = "simple-camio"

// Run executes the main interaction loop: capture → detect map → locate map →
// detect stylus → locate tip → classify zone → dispatch cue. It returns when
// the context is canceled, the camera stops producing frames, or the debug
// window is told to quit.
func (p *Pipeline) Run(ctx context.Context) error {
	capture, err := cv.OpenCapture(p.opts.Device)
	if err != nil {
		return err
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()
	gray := gocv.NewMat()
	defer gray.Close()

	var window *gocv.Window
	if p.opts.ShowWindow {
		window = gocv.NewWindow(windowTitle)
		defer window.Close()
	}

	p.logger.Info("Starting interaction loop")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down")
			return nil
		default:
		}

		if !capture.Read(&frame) {
			p.logger.Info("No camera image returned; stopping")
			return nil
		}
		if frame.Empty() {
			continue
		}

		p.processFrame(&frame, &gray)

		if window != nil {
			window.IMShow(frame)
			key := window.WaitKey(1)
			if key == 27 || key == 'q' {
				p.logger.Info("Quit requested")
				return nil
			}
		}
	}
}

// processFrame runs one frame through the pipeline. Absences (no map visible,
// no stylus visible, tip over no zone) end the frame early; none of them is an
// error.
func (p *Pipeline) processFrame(frame, gray *gocv.Mat) {
	gocv.CvtColor(*frame, gray, gocv.ColorBGRToGray)

	mapObs := p.mapDetector.Detect(*gray)
	mapPose, ok := p.model.Locate(mapObs)
	if !ok {
		p.logger.Debug("Map not found in frame")
		return
	}
	if p.opts.ShowWindow {
		cv.Annotate(frame, p.mapPoints, mapPose, p.intrinsics)
	}

	stylusObs := p.stylusDetector.Detect(*gray)
	tip, ok := p.pointer.Locate(stylusObs, mapPose)
	if !ok {
		p.logger.Debug("Stylus not found in frame")
		return
	}
	p.logger.Debugf("Tip at (%.2f, %.2f, %.2f) cm", tip.X, tip.Y, tip.Z)

	if p.trace != nil {
		p.trace.Record(tip)
	}

	zone := p.zones.Classify(tip)
	if zone >= 0 {
		p.dispatcher.Dispatch(zone)
	}
}
