// Package audiotest generates WAV fixtures for tests.
package audiotest

import (
	"math"
	"os"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sine returns interleaved samples of a sine wave at half scale for the
// given bit depth, identical on every channel. 8-bit samples are unsigned
// and centered on 128, as WAV stores them.
func Sine(frequency, duration float64, sampleRate, channels, bitDepth int) []int {
	frames := int(duration * float64(sampleRate))
	amplitude := float64(int(1)<<(bitDepth-1)-1) / 2
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	data := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		v := offset + int(amplitude*math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)))
		for c := 0; c < channels; c++ {
			data = append(data, v)
		}
	}
	return data
}

// WriteSineWAV writes a PCM WAV file holding a 440 Hz sine wave to path.
func WriteSineWAV(t testing.TB, path string, duration float64, sampleRate, channels, bitDepth int) []int {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	data := Sine(440, duration, sampleRate, channels, bitDepth)

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}

	return data
}
