// Package config provides configuration management for wav2mp3.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get the built-in defaults:
//
//	settings := config.DefaultSettings()
//	// Bitrate 320k
//	// ffmpeg from PATH, libmp3lame codec
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// The command line tool only reads a file when --config is passed.
// The terminal UI reads and writes DefaultPath() to remember the last
// bitrate used.
package config
