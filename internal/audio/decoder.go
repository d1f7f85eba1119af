package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV is returned for input that is not a RIFF/WAVE file.
	ErrInvalidWAV = errors.New("not a valid WAV file")

	// ErrUnsupportedFormat is returned for WAV files whose samples are
	// neither integer PCM at 8, 16, 24 or 32 bits nor 32-bit IEEE float.
	ErrUnsupportedFormat = errors.New("unsupported WAV sample format")
)

// Decoder reads WAV files into memory.
type Decoder struct{}

// NewDecoder creates a new WAV Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads the whole WAV file at path into a PCM buffer.
//
// A missing or unreadable file returns the underlying *os.PathError.
// Files without a RIFF/WAVE header return ErrInvalidWAV. Integer PCM and
// 32-bit IEEE float are accepted, in plain or WAVE_FORMAT_EXTENSIBLE fmt
// chunks; any other sample encoding returns ErrUnsupportedFormat.
func (d *Decoder) Decode(ctx context.Context, path string) (*PCM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidWAV)
	}
	if dec.NumChans == 0 {
		return nil, fmt.Errorf("%s: %w: no channels", path, ErrInvalidWAV)
	}

	// go-audio ignores the sub-format of extensible files, so the fmt
	// chunk is read again to tell integer from float samples.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	format, err := readSampleFormat(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	pcm := &PCM{
		SampleRate:  int(dec.SampleRate),
		NumChannels: int(dec.NumChans),
		BitDepth:    int(dec.BitDepth),
	}
	switch format.Tag {
	case formatPCM:
	case formatIEEEFloat:
		pcm.Float = true
	default:
		return nil, fmt.Errorf("%s: %w (%s)", path, ErrUnsupportedFormat, format)
	}
	if pcm.RawFormat() == "" {
		return nil, fmt.Errorf("%s: %w: %d-bit %s samples", path, ErrUnsupportedFormat, pcm.BitDepth, pcm.sampleKind())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	pcm.Data = buf.Data

	return pcm, nil
}
