package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/handiism/wav2mp3/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Bitrate used when the caller does not pass one.
	Bitrate string `json:"bitrate"`

	// Encoder settings
	FFmpegPath string `json:"ffmpeg_path"`
	Codec      string `json:"codec"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Bitrate:    model.DefaultBitrate,
		FFmpegPath: "ffmpeg",
		Codec:      "libmp3lame",
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "wav2mp3", "config.json")
}

// Load reads settings from a JSON file.
// Fields missing from the file or set to "" keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	settings.fillDefaults()

	return settings, nil
}

func (s *Settings) fillDefaults() {
	def := DefaultSettings()
	if s.Bitrate == "" {
		s.Bitrate = def.Bitrate
	}
	if s.FFmpegPath == "" {
		s.FFmpegPath = def.FFmpegPath
	}
	if s.Codec == "" {
		s.Codec = def.Codec
	}
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
