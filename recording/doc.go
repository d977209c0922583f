// Package recording replays stepper frames on export backends.
//
// A stepper.Frame is already a recording: an ordered list of typed draw
// primitives, each carrying its complete paint. This package defines the
// Backend interface those primitives are executed against and a
// database/sql style registry of named backends.
//
// # Backends
//
//   - raster (recording/backends/raster): pixels in an *image.RGBA, PNG output
//   - svg (recording/backends/svg): SVG document
//   - term (recording/backends/term): ANSI-colored terminal cells
//
// Importing a backend package registers it:
//
//	import _ "github.com/gogpu/stepper/recording/backends/raster"
//
//	b, err := recording.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := recording.Playback(frame, b); err != nil {
//	    return err
//	}
package recording
