package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/wav2mp3/internal/audio"
	"github.com/handiism/wav2mp3/internal/audio/audiotest"
	"github.com/handiism/wav2mp3/internal/model"
)

type fakeDecoder struct {
	pcm   *audio.PCM
	err   error
	paths []string
}

func (d *fakeDecoder) Decode(_ context.Context, path string) (*audio.PCM, error) {
	d.paths = append(d.paths, path)
	return d.pcm, d.err
}

type encodeCall struct {
	pcm     *audio.PCM
	path    string
	bitrate string
}

type fakeEncoder struct {
	err   error
	calls []encodeCall
}

func (e *fakeEncoder) Encode(_ context.Context, pcm *audio.PCM, path, bitrate string) error {
	e.calls = append(e.calls, encodeCall{pcm: pcm, path: path, bitrate: bitrate})
	return e.err
}

type fakeProber struct {
	info *audio.StreamInfo
	err  error
}

func (p *fakeProber) Probe(string) (*audio.StreamInfo, error) {
	return p.info, p.err
}

func testPCM() *audio.PCM {
	return &audio.PCM{SampleRate: 44100, NumChannels: 2, BitDepth: 16, Data: make([]int, 88200)}
}

func TestConverter_Convert(t *testing.T) {
	pcm := testPCM()
	dec := &fakeDecoder{pcm: pcm}
	enc := &fakeEncoder{}

	var events []Event
	c := NewConverter(dec, enc, func(e Event) { events = append(events, e) })

	conv := model.NewConversion("in/take1.wav", "", "128k")
	if err := c.Convert(context.Background(), conv); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(dec.paths) != 1 || dec.paths[0] != "in/take1.wav" {
		t.Errorf("decoder paths = %v, want [in/take1.wav]", dec.paths)
	}
	if len(enc.calls) != 1 {
		t.Fatalf("encoder called %d times, want 1", len(enc.calls))
	}
	call := enc.calls[0]
	if call.pcm != pcm {
		t.Error("encoder should receive the decoded buffer")
	}
	if call.path != "in/take1.mp3" {
		t.Errorf("encode path = %q, want %q", call.path, "in/take1.mp3")
	}
	if call.bitrate != "128k" {
		t.Errorf("encode bitrate = %q, want %q", call.bitrate, "128k")
	}

	if len(events) == 0 {
		t.Fatal("expected events")
	}
	last := events[len(events)-1]
	if last.Level != LevelSuccess || !strings.Contains(last.Message, "in/take1.mp3") {
		t.Errorf("last event = %+v, want success naming the output", last)
	}
}

func TestConverter_DecodeErrorSkipsEncode(t *testing.T) {
	decodeErr := errors.New("boom")
	enc := &fakeEncoder{}

	var levels []Level
	c := NewConverter(&fakeDecoder{err: decodeErr}, enc, func(e Event) { levels = append(levels, e.Level) })

	err := c.Convert(context.Background(), model.NewConversion("take1.wav", "", ""))
	if !errors.Is(err, decodeErr) {
		t.Errorf("Convert() error = %v, want %v", err, decodeErr)
	}
	if len(enc.calls) != 0 {
		t.Error("encoder should not run after a decode failure")
	}
	if levels[len(levels)-1] != LevelError {
		t.Errorf("last level = %v, want error", levels[len(levels)-1])
	}
}

func TestConverter_EncodeErrorPropagates(t *testing.T) {
	encodeErr := errors.New("ffmpeg encode x.mp3: exit status 1")
	c := NewConverter(&fakeDecoder{pcm: testPCM()}, &fakeEncoder{err: encodeErr}, nil)

	err := c.Convert(context.Background(), model.NewConversion("x.wav", "", ""))
	if !errors.Is(err, encodeErr) {
		t.Errorf("Convert() error = %v, want %v", err, encodeErr)
	}
}

func TestConverter_Probe(t *testing.T) {
	tests := []struct {
		name      string
		prober    *fakeProber
		wantLevel Level
		wantText  string
	}{
		{
			name:      "reports stream bitrate",
			prober:    &fakeProber{info: &audio.StreamInfo{CodecName: "mp3", BitRate: 320000, SampleRate: 44100, Channels: 2}},
			wantLevel: LevelInfo,
			wantText:  "320 kb/s",
		},
		{
			name:      "probe failure is a warning",
			prober:    &fakeProber{err: errors.New("ffprobe missing")},
			wantLevel: LevelWarning,
			wantText:  "ffprobe missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []Event
			c := NewConverter(&fakeDecoder{pcm: testPCM()}, &fakeEncoder{}, func(e Event) { events = append(events, e) })
			c.SetProber(tt.prober)

			if err := c.Convert(context.Background(), model.NewConversion("x.wav", "", "")); err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			found := false
			for _, e := range events {
				if e.Level == tt.wantLevel && strings.Contains(e.Message, tt.wantText) {
					found = true
				}
			}
			if !found {
				t.Errorf("events = %+v, want a %v event containing %q", events, tt.wantLevel, tt.wantText)
			}
		})
	}
}

func TestConverter_RealDecoderRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	notWAV := filepath.Join(dir, "notes.wav")
	if err := os.WriteFile(notWAV, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing input", filepath.Join(dir, "absent.wav"), os.ErrNotExist},
		{"not a wav", notWAV, audio.ErrInvalidWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := &fakeEncoder{}
			c := NewConverter(audio.NewDecoder(), enc, nil)

			conv := model.NewConversion(tt.input, "", "")
			err := c.Convert(context.Background(), conv)
			if !errors.Is(err, tt.want) {
				t.Errorf("Convert() error = %v, want %v", err, tt.want)
			}
			if len(enc.calls) != 0 {
				t.Error("encoder should not run")
			}
			if _, err := os.Stat(conv.OutputPath); !os.IsNotExist(err) {
				t.Errorf("output %s should not exist", conv.OutputPath)
			}
		})
	}
}

func TestConverter_RealDecoderFeedsEncoder(t *testing.T) {
	in := filepath.Join(t.TempDir(), "take1.wav")
	audiotest.WriteSineWAV(t, in, 0.1, 8000, 1, 16)

	enc := &fakeEncoder{}
	c := NewConverter(audio.NewDecoder(), enc, nil)

	if err := c.Convert(context.Background(), model.NewConversion(in, "", "")); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(enc.calls) != 1 {
		t.Fatalf("encoder called %d times, want 1", len(enc.calls))
	}
	pcm := enc.calls[0].pcm
	if pcm.SampleRate != 8000 || pcm.NumChannels != 1 || pcm.Frames() != 800 {
		t.Errorf("encoder got %d Hz, %d ch, %d frames; want 8000 Hz, 1 ch, 800 frames",
			pcm.SampleRate, pcm.NumChannels, pcm.Frames())
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelInfo, "info"},
		{LevelVerbose, "verbose"},
		{LevelWarning, "warning"},
		{LevelError, "error"},
		{LevelSuccess, "success"},
		{Level(42), "level(42)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}
