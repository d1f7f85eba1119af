package audio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// StreamInfo describes the first audio stream of a media file.
type StreamInfo struct {
	CodecName  string
	SampleRate int
	Channels   int
	// BitRate in bits per second.
	BitRate int
}

var errNoAudioStream = errors.New("no audio stream found")

// Prober reads stream information with ffprobe.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe runs ffprobe on path and returns its first audio stream.
func (p *Prober) Probe(path string) (*StreamInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe([]byte(out))
}

type probeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		BitRate    string `json:"bit_rate"`
	} `json:"streams"`
	Format struct {
		BitRate string `json:"bit_rate"`
	} `json:"format"`
}

// parseProbe extracts StreamInfo from ffprobe's JSON output.
// The container bit rate is used when the stream does not report one.
func parseProbe(data []byte) (*StreamInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "audio" {
			continue
		}

		info := &StreamInfo{
			CodecName: s.CodecName,
			Channels:  s.Channels,
		}
		// Rates ffprobe leaves out or reports as "N/A" stay 0.
		info.SampleRate, _ = strconv.Atoi(s.SampleRate)

		bitRate := s.BitRate
		if bitRate == "" {
			bitRate = out.Format.BitRate
		}
		info.BitRate, _ = strconv.Atoi(bitRate) // 0 when unknown

		return info, nil
	}

	return nil, errNoAudioStream
}
