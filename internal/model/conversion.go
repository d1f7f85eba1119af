package model

import (
	"path/filepath"
	"strings"
)

// DefaultBitrate is the MP3 bitrate used when none is given.
const DefaultBitrate = "320k"

// OutputExtension is the extension given to derived output paths.
const OutputExtension = ".mp3"

// Conversion describes a single WAV to MP3 conversion.
//
// The output path is computed when creating a conversion via NewConversion
// if the caller does not supply one.
//
// Example:
//
//	c := NewConversion("/music/take1.wav", "", "")
//	// c.OutputPath = "/music/take1.mp3"
//	// c.Bitrate    = "320k"
type Conversion struct {
	// InputPath is the WAV file to read.
	InputPath string

	// OutputPath is where the MP3 is written. Used verbatim when supplied.
	OutputPath string

	// Bitrate is handed to the encoder as is (e.g. "128k").
	// It is never parsed or validated here.
	Bitrate string
}

// NewConversion creates a Conversion, filling in the default output path
// and bitrate when they are empty.
func NewConversion(inputPath, outputPath, bitrate string) *Conversion {
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	return &Conversion{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Bitrate:    bitrate,
	}
}

// DefaultOutputPath replaces the extension of inputPath with ".mp3",
// keeping its directory and base name.
//
// Leading dots of the file name are not treated as an extension separator:
//
//	DefaultOutputPath("a/take1.wav") // "a/take1.mp3"
//	DefaultOutputPath("a/.hidden")   // "a/.hidden.mp3"
//	DefaultOutputPath("a.b.wav")     // "a.b.mp3"
func DefaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, extension(inputPath)) + OutputExtension
}

// extension returns the extension of the last path element, ignoring
// any leading dots in that element.
func extension(path string) string {
	base := path[strings.LastIndexAny(path, `/`+string(filepath.Separator))+1:]
	name := strings.TrimLeft(base, ".")

	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i:]
}
