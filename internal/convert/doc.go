// Package convert runs a single WAV to MP3 conversion.
//
// # Converter
//
// The Converter performs one linear sequence:
//
//  1. Decode the WAV file into an in-memory PCM buffer
//  2. Encode the buffer to MP3 at the requested bitrate
//  3. Optionally read back the written stream with ffprobe
//
// # Basic Usage
//
//	conv := convert.New(config.DefaultSettings(), func(e convert.Event) {
//	    fmt.Println(e.Message)
//	})
//
//	err := conv.Convert(ctx, model.NewConversion("take1.wav", "", "320k"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Events
//
// Diagnostics are reported via a callback receiving Event:
//
//	type Event struct {
//	    Message string
//	    Level   Level // Info, Verbose, Warning, Error, Success
//	}
//
// Errors are returned unchanged from the decoder or encoder. Nothing is
// retried.
package convert
