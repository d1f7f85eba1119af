package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/wav2mp3/internal/audio"
	"github.com/handiism/wav2mp3/internal/config"
	"github.com/handiism/wav2mp3/internal/convert"
	"github.com/handiism/wav2mp3/internal/model"
)

type converter interface {
	Convert(ctx context.Context, conv *model.Conversion) error
}

type converterFactory func(settings *config.Settings, verbose bool, onEvent func(convert.Event)) converter

// usageError marks bad command line input; it is reported with usage text.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, newRootCmd(os.Stdout, os.Stderr, newConverter), os.Stderr)
	cancel()
	os.Exit(code)
}

func newConverter(settings *config.Settings, verbose bool, onEvent func(convert.Event)) converter {
	c := convert.New(settings, onEvent)
	if verbose {
		c.SetProber(audio.NewProber())
	}
	return c
}

func newRootCmd(stdout, stderr io.Writer, newConv converterFactory) *cobra.Command {
	var (
		output     string
		bitrate    string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "wav2mp3 <wav_file>",
		Short: "Convert WAV files to MP3 format with specified bitrate.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("expected one WAV file, got %d arguments", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configPath != "" {
				var err error
				settings, err = config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
			}
			if !cmd.Flags().Changed("bitrate") {
				bitrate = settings.Bitrate
			}

			conv := model.NewConversion(args[0], output, bitrate)

			c := newConv(settings, verbose, func(event convert.Event) {
				if !verbose {
					return
				}
				fmt.Fprintf(stderr, "[%s] %s\n", event.Level, event.Message)
			})
			if err := c.Convert(cmd.Context(), conv); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Conversion successful! MP3 saved at: %s\n", conv.OutputPath)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Path to save the output MP3 file (default: input path with .mp3 extension)")
	flags.StringVarP(&bitrate, "bitrate", "b", model.DefaultBitrate, "Bitrate for the output MP3 file")
	flags.StringVar(&configPath, "config", "", "Path to config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	return cmd
}

// execute runs cmd and returns the process exit code.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	if ctx.Err() != nil {
		fmt.Fprintln(stderr, "Conversion cancelled.")
		return 130
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
