// Command cli holds the setup utilities: probing camera ports and inspecting
// model files before a session.
package main

import (
	"flag"

	"go.viam.com/rdk/logging"

	"github.com/rcrabb-ski/simple-camio/cv"
	"github.com/rcrabb-ski/simple-camio/internal/modelcfg"
)

func main() {
	probe := flag.Bool("probe", false, "probe camera device indices and report which ones work")
	maxFailures := flag.Int("max-failures", 6, "total unopenable devices tolerated before probing stops")
	mapModel := flag.String("model", "", "map model JSON file to inspect")
	stylusModel := flag.String("stylus", "", "stylus model JSON file to inspect")
	flag.Parse()

	logger := logging.NewLogger("simple-camio-cli")

	if !*probe && *mapModel == "" && *stylusModel == "" {
		logger.Fatal("nothing to do; pass -probe, -model, or -stylus")
	}

	if *probe {
		runProbe(logger, *maxFailures)
	}
	if *mapModel != "" {
		inspectMapModel(logger, *mapModel)
	}
	if *stylusModel != "" {
		inspectStylusModel(logger, *stylusModel)
	}
}

func runProbe(logger logging.Logger, maxFailures int) {
	logger.Info("Probing camera devices...")
	ports := cv.ProbePorts(maxFailures)
	if len(ports) == 0 {
		logger.Info("No cameras found")
		return
	}
	for _, p := range ports {
		if p.Reads {
			logger.Infof("Device %d works and reads images (%.0f x %.0f)", p.Index, p.Width, p.Height)
		} else {
			logger.Infof("Device %d opens but does not read images (%.0f x %.0f)", p.Index, p.Width, p.Height)
		}
	}
}

func inspectMapModel(logger logging.Logger, path string) {
	model, err := modelcfg.LoadMapModel(path)
	if err != nil {
		logger.Fatal(err)
	}
	layout, err := model.PositioningData.Layout()
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("Map model %s", path)
	logger.Infof("  zone image: %s (%.1f px/cm)", model.Filename, model.PixelsPerCm)
	logger.Infof("  aruco dictionary: %s, %d markers", model.PositioningData.ArucoType, layout.NumMarkers())
	logger.Infof("  hotspots: %d", len(model.Hotspots))
	for i, h := range model.Hotspots {
		logger.Infof("    zone %d: color=(%d, %d, %d) %q audio=%s",
			i, h.Color[0], h.Color[1], h.Color[2], h.TextDescription, h.AudioDescription)
	}
}

func inspectStylusModel(logger logging.Logger, path string) {
	model, err := modelcfg.LoadStylusModel(path)
	if err != nil {
		logger.Fatal(err)
	}
	layout, err := model.PositioningData.Layout()
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("Stylus model %s", path)
	logger.Infof("  aruco dictionary: %s, %d markers", model.PositioningData.ArucoType, layout.NumMarkers())
}
