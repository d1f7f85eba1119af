// Package audio provides the WAV decoding and MP3 encoding services
// behind a conversion.
//
// # Decoding
//
// Use the Decoder to read a whole WAV file into memory:
//
//	pcm, err := audio.NewDecoder().Decode(ctx, "take1.wav")
//	// pcm.SampleRate, pcm.NumChannels, pcm.BitDepth, pcm.Data
//
// Files that are not RIFF/WAVE fail with ErrInvalidWAV; float or
// compressed WAV data fails with ErrUnsupportedFormat.
//
// # Encoding
//
// The Encoder pipes the PCM into ffmpeg and lets libmp3lame do the work:
//
//	enc := audio.NewEncoder("ffmpeg", "libmp3lame")
//	err := enc.Encode(ctx, pcm, "take1.mp3", "320k")
//
// The bitrate string is passed to ffmpeg as is; malformed values fail
// inside ffmpeg and its message is returned.
//
// # Probing
//
// The Prober reads back stream parameters with ffprobe:
//
//	info, err := audio.NewProber().Probe("take1.mp3")
//	fmt.Println(info.BitRate) // 320000
package audio
