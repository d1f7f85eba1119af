package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// PCM is a fully decoded, interleaved sample buffer.
//
// Integer samples keep the value range of the source bit depth: 8-bit data
// is unsigned (0..255), wider depths are signed. Float samples hold the
// IEEE 754 bit pattern of each 32-bit value.
type PCM struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	Float       bool
	Data        []int
}

// Frames returns the number of sample frames (samples per channel).
func (p *PCM) Frames() int {
	if p.NumChannels == 0 {
		return 0
	}
	return len(p.Data) / p.NumChannels
}

// Duration returns the playing time of the buffer.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate == 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.SampleRate)
}

// RawFormat returns the ffmpeg raw PCM demuxer name matching the sample
// encoding, or "" when ffmpeg cannot be fed this buffer.
func (p *PCM) RawFormat() string {
	if p.Float {
		if p.BitDepth == 32 {
			return "f32le"
		}
		return ""
	}
	switch p.BitDepth {
	case 8:
		return "u8"
	case 16:
		return "s16le"
	case 24:
		return "s24le"
	case 32:
		return "s32le"
	}
	return ""
}

func (p *PCM) sampleKind() string {
	if p.Float {
		return "float"
	}
	return "integer"
}

// WriteTo writes the samples as headerless little-endian PCM at the
// source bit depth.
func (p *PCM) WriteTo(w io.Writer) (int64, error) {
	width := p.BitDepth / 8
	if p.RawFormat() == "" {
		return 0, fmt.Errorf("%w: %d-bit %s samples", ErrUnsupportedFormat, p.BitDepth, p.sampleKind())
	}

	bw := bufio.NewWriterSize(w, 64*1024)
	var (
		sample [4]byte
		n      int64
	)
	for _, v := range p.Data {
		switch width {
		case 1:
			sample[0] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(sample[:], uint16(int16(v)))
		default:
			binary.LittleEndian.PutUint32(sample[:], uint32(int32(v)))
		}
		wn, err := bw.Write(sample[:width])
		n += int64(wn)
		if err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}
