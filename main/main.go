package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.viam.com/rdk/logging"

	camio "github.com/rcrabb-ski/simple-camio"
)

func main() {
	mapModel := flag.String("input1", "models/UkraineMap/UkraineMap.json", "path to the map model JSON file")
	stylusModel := flag.String("stylus", "models/stylus/stylus.json", "path to the stylus model JSON file")
	camParams := flag.String("camera", "camera_parameters.json", "path to the camera intrinsics JSON file")
	device := flag.Int("device", 0, "camera device index")
	show := flag.Bool("show", false, "show the reprojection debug window (ESC or q quits)")
	trace := flag.String("trace", "", "write the session's tip trajectory to this PCD file")
	flag.Parse()

	logger := logging.NewDebugLogger("simple-camio")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pipeline, err := camio.NewPipeline(camio.Options{
		MapModelPath:     *mapModel,
		StylusModelPath:  *stylusModel,
		CameraParamsPath: *camParams,
		Device:           *device,
		ShowWindow:       *show,
		TracePath:        *trace,
	}, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer pipeline.Close()

	if err := pipeline.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
