package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// WAV format tags.
const (
	formatPCM        = 0x0001
	formatIEEEFloat  = 0x0003
	formatExtensible = 0xFFFE
)

// ksDataFormatSuffix is the tail shared by the KSDATAFORMAT_SUBTYPE GUIDs
// of WAVE_FORMAT_EXTENSIBLE. The first two bytes hold the plain format tag.
var ksDataFormatSuffix = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00,
	0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// maxFmtChunkSize bounds the fmt chunk read into memory.
const maxFmtChunkSize = 1 << 12

// sampleFormat is the encoding of the samples in a WAV data chunk.
type sampleFormat struct {
	// Tag is the effective format tag: the sub-format of an extensible
	// file, the fmt chunk's tag otherwise.
	Tag uint16
	// Extensible is set when the fmt chunk used WAVE_FORMAT_EXTENSIBLE.
	Extensible bool
}

func (f sampleFormat) String() string {
	if f.Extensible {
		return fmt.Sprintf("extensible, sub-format %#x", f.Tag)
	}
	return fmt.Sprintf("format tag %#x", f.Tag)
}

// readSampleFormat walks the RIFF chunks of r until the fmt chunk and
// resolves its effective format tag.
func readSampleFormat(r io.Reader) (sampleFormat, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return sampleFormat{}, ErrInvalidWAV
	}
	if p.Format != riff.WavFormatID {
		return sampleFormat{}, ErrInvalidWAV
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return sampleFormat{}, fmt.Errorf("%w: no fmt chunk", ErrInvalidWAV)
			}
			return sampleFormat{}, err
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		return decodeFmtChunk(ch)
	}
}

func decodeFmtChunk(ch *riff.Chunk) (sampleFormat, error) {
	if ch.Size > maxFmtChunkSize {
		return sampleFormat{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrInvalidWAV, ch.Size)
	}
	body := make([]byte, ch.Size)
	if _, err := io.ReadFull(ch, body); err != nil {
		return sampleFormat{}, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
	}
	if len(body) < 16 {
		return sampleFormat{}, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
	}

	tag := binary.LittleEndian.Uint16(body[0:2])
	if tag != formatExtensible {
		return sampleFormat{Tag: tag}, nil
	}

	// cbSize(2) validBits(2) channelMask(4) subFormat(16)
	if len(body) < 40 || binary.LittleEndian.Uint16(body[16:18]) < 22 {
		return sampleFormat{}, fmt.Errorf("%w: extensible fmt chunk without sub-format", ErrInvalidWAV)
	}
	guid := body[24:40]
	if !bytes.Equal(guid[2:], ksDataFormatSuffix) {
		// Not a KSDATAFORMAT_SUBTYPE_* GUID, so no tag maps onto it.
		return sampleFormat{Tag: formatExtensible, Extensible: true}, nil
	}
	return sampleFormat{
		Tag:        binary.LittleEndian.Uint16(guid[0:2]),
		Extensible: true,
	}, nil
}
