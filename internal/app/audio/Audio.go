package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// FFmpegDecoder shells out to ffprobe/ffmpeg.
type FFmpegDecoder struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpegDecoder creates a decoder using the given binaries; empty paths
// mean "look up ffmpeg/ffprobe on PATH".
func NewFFmpegDecoder(ffmpegPath, ffprobePath string) *FFmpegDecoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegDecoder{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

func (d *FFmpegDecoder) Name() string {
	return "ffmpeg"
}

func (d *FFmpegDecoder) Available() error {
	if _, err := exec.LookPath(d.ffmpegPath); err != nil {
		return fmt.Errorf("looking for `%s`: %w", d.ffmpegPath, err)
	}
	if _, err := exec.LookPath(d.ffprobePath); err != nil {
		return fmt.Errorf("looking for `%s`: %w", d.ffprobePath, err)
	}
	return nil
}

// Duration reads the container duration reported by ffprobe.
func (d *FFmpegDecoder) Duration(ctx context.Context, src string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, d.ffprobePath, "-v", "error", "-print_format", "json", "-show_format", src)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return 0, apperrors.Environment(err, "ffprobe failed on '%s': %s", src, strings.TrimSpace(stderr.String()))
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return 0, apperrors.Environment(err, "unexpected ffprobe output for '%s'", src)
	}

	return secondsToDuration(probeOutput.Format.Duration), nil
}

// Cut extracts span of src into dst. Streams are copied when dst has the
// same extension as src, otherwise re-encoded for dst's format.
func (d *FFmpegDecoder) Cut(ctx context.Context, src, dst string, span model.TimeSpan) error {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-ss", formatSeconds(span.Start),
		"-i", src,
		"-t", formatSeconds(span.Duration()),
		"-vn", "-map_metadata", "-1",
	}
	args = append(args, codecArgs(src, dst)...)
	args = append(args, dst)

	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)

	// capture stderr so the cause is surfaced to the caller
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Environment(err, "FFmpeg error cutting %s of '%s': %s", span, filepath.Base(src), strings.TrimSpace(stderr.String()))
	}
	return nil
}

func codecArgs(src, dst string) []string {
	srcFormat := GetAudioFormatFromFilename(src)
	dstFormat := GetAudioFormatFromFilename(dst)
	if srcFormat == dstFormat {
		return []string{"-c:a", "copy"}
	}

	switch dstFormat {
	case FormatMP3, FormatMPGA, FormatMPEG:
		return []string{"-acodec", "libmp3lame"}
	case FormatM4A, FormatMP4:
		return []string{"-acodec", "aac"}
	case FormatOGG, FormatOGA:
		return []string{"-acodec", "libvorbis"}
	case FormatWEBM:
		return []string{"-acodec", "libopus"}
	case FormatFLAC:
		return []string{"-acodec", "flac"}
	case FormatWAV:
		return []string{"-acodec", "pcm_s16le"}
	default:
		return nil
	}
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
