// Package camio tracks a hand-held stylus over a printed tactile map and
// speaks the description of the map zone under the stylus tip. A camera
// observes ArUco markers on the map and on the stylus; per frame the map and
// stylus poses are recovered from marker correspondences, the tip is expressed
// in map-local coordinates, and the touched zone is classified and announced.
package camio

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage"

	"github.com/rcrabb-ski/simple-camio/audio"
	"github.com/rcrabb-ski/simple-camio/cv"
	"github.com/rcrabb-ski/simple-camio/internal/modelcfg"
	"github.com/rcrabb-ski/simple-camio/tracking"
)

// Options selects the model files and runtime behavior of a Pipeline.
type Options struct {
	MapModelPath     string
	StylusModelPath  string
	CameraParamsPath string

	// Device is the camera index to open.
	Device int

	// ShowWindow enables the reprojection debug window. ESC or q in the
	// window quits the loop.
	ShowWindow bool

	// TracePath, when set, is a PCD file to which the session's tip
	// trajectory is written on shutdown.
	TracePath string
}

// Pipeline holds every component of the frame loop. All state is owned here;
// nothing is package-level, so independent pipelines can coexist and tests can
// construct components directly.
type Pipeline struct {
	logger logging.Logger
	opts   Options

	// Detection
	mapDetector    *cv.Detector
	stylusDetector *cv.Detector

	// Tracking
	model   *tracking.ModelLocator
	pointer *tracking.PointerLocator
	zones   *tracking.ZoneClassifier

	// Interaction
	dispatcher *tracking.Dispatcher
	player     *audio.Player

	// Debug overlay inputs.
	mapPoints  []r3.Vector
	intrinsics tracking.Intrinsics

	trace *TipTrace
}

// NewPipeline loads all model files and builds the full pipeline. Any missing
// or malformed configuration is a fatal startup error.
func NewPipeline(opts Options, logger logging.Logger) (*Pipeline, error) {
	mapModel, err := modelcfg.LoadMapModel(opts.MapModelPath)
	if err != nil {
		return nil, err
	}
	stylusModel, err := modelcfg.LoadStylusModel(opts.StylusModelPath)
	if err != nil {
		return nil, err
	}
	camParams, err := modelcfg.LoadCameraParameters(opts.CameraParamsPath)
	if err != nil {
		return nil, err
	}

	mapLayout, err := mapModel.PositioningData.Layout()
	if err != nil {
		return nil, fmt.Errorf("map layout: %w", err)
	}
	stylusLayout, err := stylusModel.PositioningData.Layout()
	if err != nil {
		return nil, fmt.Errorf("stylus layout: %w", err)
	}

	zoneImg, err := rimage.NewImageFromFile(mapModel.Filename)
	if err != nil {
		return nil, fmt.Errorf("loading zone image %s: %w", mapModel.Filename, err)
	}

	cfg := tracking.DefaultConfig()
	hotspots := mapModel.TrackingHotspots()
	intrinsics := camParams.Intrinsics()

	zones, err := tracking.NewZoneClassifier(zoneImg, hotspots, mapModel.PixelsPerCm, cfg)
	if err != nil {
		return nil, err
	}

	player, err := audio.NewPlayer(mapModel.AudioPaths(), logger)
	if err != nil {
		return nil, fmt.Errorf("audio backend: %w", err)
	}

	mapDetector, err := cv.NewDetector(mapModel.PositioningData.ArucoType)
	if err != nil {
		return nil, fmt.Errorf("map detector: %w", err)
	}
	stylusDetector, err := cv.NewDetector(stylusModel.PositioningData.ArucoType)
	if err != nil {
		return nil, fmt.Errorf("stylus detector: %w", err)
	}

	estimator := tracking.NewPoseEstimator(cv.Solver{})

	p := &Pipeline{
		logger:         logger,
		opts:           opts,
		mapDetector:    mapDetector,
		stylusDetector: stylusDetector,
		model:          tracking.NewModelLocator(mapLayout, estimator, intrinsics),
		pointer:        tracking.NewPointerLocator(stylusLayout, estimator, intrinsics),
		zones:          zones,
		dispatcher:     tracking.NewDispatcher(hotspots, player, logger, cfg.DispatchCooldown),
		player:         player,
		mapPoints:      mapLayout.ModelPoints(),
		intrinsics:     intrinsics,
	}
	if opts.TracePath != "" {
		p.trace = NewTipTrace(opts.TracePath)
	}

	logger.Infof("Loaded map model %s: %d markers, %d hotspots",
		opts.MapModelPath, mapLayout.NumMarkers(), len(hotspots))
	logger.Infof("Loaded stylus model %s: %d markers",
		opts.StylusModelPath, stylusLayout.NumMarkers())

	return p, nil
}

// Close releases the detectors and the audio device, and flushes the tip
// trace, if any.
func (p *Pipeline) Close() error {
	if p.trace != nil && p.trace.Size() > 0 {
		if err := p.trace.Save(); err != nil {
			p.logger.Warnf("Failed to save tip trace: %v", err)
		} else {
			p.logger.Infof("Saved tip trace to %s (%d points)", p.opts.TracePath, p.trace.Size())
		}
	}

	p.player.Close()

	err := p.mapDetector.Close()
	if err2 := p.stylusDetector.Close(); err == nil {
		err = err2
	}
	return err
}
