package convert

import (
	"context"
	"fmt"

	"github.com/handiism/wav2mp3/internal/audio"
	"github.com/handiism/wav2mp3/internal/config"
	"github.com/handiism/wav2mp3/internal/model"
)

// Level indicates the severity/type of an event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns a short lowercase name for the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Event is a message emitted while a conversion runs.
type Event struct {
	Message string
	Level   Level
}

// Decoder reads an input file into memory.
type Decoder interface {
	Decode(ctx context.Context, path string) (*audio.PCM, error)
}

// Encoder writes a PCM buffer to an MP3 file.
type Encoder interface {
	Encode(ctx context.Context, pcm *audio.PCM, path, bitrate string) error
}

// Prober inspects an encoded file.
type Prober interface {
	Probe(path string) (*audio.StreamInfo, error)
}

// Converter runs WAV to MP3 conversions.
type Converter struct {
	decoder Decoder
	encoder Encoder
	prober  Prober

	onEvent func(Event)
}

// New creates a Converter backed by the go-audio WAV decoder and the
// ffmpeg encoder described by settings.
func New(settings *config.Settings, onEvent func(Event)) *Converter {
	return NewConverter(
		audio.NewDecoder(),
		audio.NewEncoder(settings.FFmpegPath, settings.Codec),
		onEvent,
	)
}

// NewConverter creates a Converter from explicit codecs.
// onEvent may be nil.
func NewConverter(dec Decoder, enc Encoder, onEvent func(Event)) *Converter {
	return &Converter{
		decoder: dec,
		encoder: enc,
		onEvent: onEvent,
	}
}

// SetProber enables reading back the stream parameters of every file
// written. Probe failures are reported as warnings only.
func (c *Converter) SetProber(p Prober) {
	c.prober = p
}

// Convert decodes conv.InputPath and writes it as MP3 to conv.OutputPath.
//
// The decoded buffer lives only for the duration of the call. A failure
// during encoding may leave a partial output file behind.
func (c *Converter) Convert(ctx context.Context, conv *model.Conversion) error {
	c.emit(Event{Message: fmt.Sprintf("Decoding %s", conv.InputPath), Level: LevelVerbose})

	pcm, err := c.decoder.Decode(ctx, conv.InputPath)
	if err != nil {
		c.emit(Event{Message: fmt.Sprintf("Error decoding %s: %v", conv.InputPath, err), Level: LevelError})
		return err
	}

	c.emit(Event{
		Message: fmt.Sprintf("Decoded %d frames (%d Hz, %d ch, %d-bit %s, %s)",
			pcm.Frames(), pcm.SampleRate, pcm.NumChannels, pcm.BitDepth, pcm.RawFormat(), pcm.Duration()),
		Level: LevelVerbose,
	})
	c.emit(Event{Message: fmt.Sprintf("Encoding %s at %s", conv.OutputPath, conv.Bitrate), Level: LevelVerbose})

	if err := c.encoder.Encode(ctx, pcm, conv.OutputPath, conv.Bitrate); err != nil {
		c.emit(Event{Message: fmt.Sprintf("Error encoding %s: %v", conv.OutputPath, err), Level: LevelError})
		return err
	}

	if c.prober != nil {
		c.probe(conv.OutputPath)
	}

	c.emit(Event{Message: fmt.Sprintf("Wrote %s", conv.OutputPath), Level: LevelSuccess})
	return nil
}

func (c *Converter) probe(path string) {
	info, err := c.prober.Probe(path)
	if err != nil {
		c.emit(Event{Message: fmt.Sprintf("Could not inspect %s: %v", path, err), Level: LevelWarning})
		return
	}

	c.emit(Event{
		Message: fmt.Sprintf("Stream: %s, %d kb/s, %d Hz, %d ch",
			info.CodecName, info.BitRate/1000, info.SampleRate, info.Channels),
		Level: LevelInfo,
	})
}

func (c *Converter) emit(event Event) {
	if c.onEvent != nil {
		c.onEvent(event)
	}
}
