package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/sync/errgroup"
)

// Encoder defaults used for empty NewEncoder arguments.
const (
	DefaultFFmpegPath = "ffmpeg"
	DefaultCodec      = "libmp3lame"
)

// Encoder writes PCM buffers to MP3 files using the ffmpeg binary.
//
// The PCM is streamed to ffmpeg's standard input, so nothing but the
// final MP3 touches the disk.
type Encoder struct {
	ffmpegPath string
	codec      string
}

// NewEncoder creates an Encoder that runs ffmpegPath with the given
// audio codec. Empty arguments select DefaultFFmpegPath and DefaultCodec.
func NewEncoder(ffmpegPath, codec string) *Encoder {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegPath
	}
	if codec == "" {
		codec = DefaultCodec
	}
	return &Encoder{
		ffmpegPath: ffmpegPath,
		codec:      codec,
	}
}

// Args returns the ffmpeg command line (without the program name) used to
// encode pcm into path at bitrate.
func (e *Encoder) Args(pcm *PCM, path, bitrate string) []string {
	return ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"f":  pcm.RawFormat(),
		"ar": pcm.SampleRate,
		"ac": pcm.NumChannels,
	}).
		Output(path, ffmpeg.KwArgs{
			"c:a": e.codec,
			"b:a": bitrate,
			"f":   "mp3",
		}).
		GlobalArgs("-hide_banner", "-nostats", "-loglevel", "error").
		OverWriteOutput().
		GetArgs()
}

// Encode encodes pcm to MP3 at bitrate and writes it to path, creating or
// truncating the file. The bitrate is passed to ffmpeg untouched.
//
// Errors reported by ffmpeg include its stderr output.
func (e *Encoder) Encode(ctx context.Context, pcm *PCM, path, bitrate string) error {
	bin, err := exec.LookPath(e.ffmpegPath)
	if err != nil {
		return fmt.Errorf("ffmpeg not found (%s): %w", e.ffmpegPath, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, e.Args(pcm, path, bitrate)...)
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	g.Go(func() error {
		defer stdin.Close()
		if _, err := pcm.WriteTo(stdin); err != nil && !isClosedPipe(err) {
			return fmt.Errorf("write pcm to ffmpeg: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := cmd.Wait(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return fmt.Errorf("ffmpeg encode %s: %w", path, err)
			}
			return fmt.Errorf("ffmpeg encode %s: %w: %s", path, err, msg)
		}
		return nil
	})

	return g.Wait()
}

// isClosedPipe reports whether err means ffmpeg stopped reading stdin.
// The process exit status is the error worth reporting in that case.
func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
