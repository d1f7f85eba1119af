// Package model defines the data structures shared by the wav2mp3
// command line tool and its terminal UI.
//
// # Conversion
//
// Conversion describes one WAV to MP3 job with its computed output path:
//
//	c := model.NewConversion("/music/take1.wav", "", "128k")
//	fmt.Println(c.OutputPath) // "/music/take1.mp3"
//
// An explicit output path is kept verbatim, with no extension
// normalization and no existence checks:
//
//	c := model.NewConversion("take1.wav", "out/final", "")
//	fmt.Println(c.OutputPath) // "out/final"
//	fmt.Println(c.Bitrate)    // "320k"
package model
