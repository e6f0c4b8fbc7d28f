package audio

import (
	"context"
	"time"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// Decoder is the capability duration-based chunking needs: measure a source
// and cut a time span of it into an independently playable file.
type Decoder interface {
	Name() string
	// Available reports why the decoder cannot run on this machine.
	Available() error
	Duration(ctx context.Context, src string) (time.Duration, error)
	// Cut writes span of src to dst. The output format follows dst's extension.
	Cut(ctx context.Context, src, dst string, span model.TimeSpan) error
}

// DecoderOptions selects and configures a Decoder.
type DecoderOptions struct {
	Name        string // auto, ffmpeg or mp3
	FFmpegPath  string
	FFprobePath string
}

// SelectDecoder returns the decoder to use for src. "auto" prefers ffmpeg
// and falls back to the built-in MP3 frame decoder for MPEG audio.
func SelectDecoder(opts DecoderOptions, src string) (Decoder, error) {
	ffmpeg := NewFFmpegDecoder(opts.FFmpegPath, opts.FFprobePath)

	switch opts.Name {
	case "ffmpeg":
		if err := ffmpeg.Available(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDecoderMissing, err.Error())
		}
		return ffmpeg, nil
	case "mp3":
		if !IsMP3(src) {
			return nil, apperrors.Configuration("the mp3 decoder only handles MPEG audio, got '%s'", src).
				WithGuidance("Install ffmpeg or use --strategy bytes")
		}
		return NewMP3FrameDecoder(), nil
	case "", "auto":
		err := ffmpeg.Available()
		if err == nil {
			return ffmpeg, nil
		}
		if IsMP3(src) {
			return NewMP3FrameDecoder(), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrDecoderMissing, err.Error())
	default:
		return nil, apperrors.Configuration("unknown decoder %q", opts.Name)
	}
}
