package audio

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	apperrors "a2t/internal/app/errors"
)

// AudioFormat is a container/codec accepted by the transcription endpoint,
// named by its file extension.
type AudioFormat string

const (
	FormatFLAC AudioFormat = "flac"
	FormatM4A  AudioFormat = "m4a"
	FormatMP3  AudioFormat = "mp3"
	FormatMP4  AudioFormat = "mp4"
	FormatMPEG AudioFormat = "mpeg"
	FormatMPGA AudioFormat = "mpga"
	FormatOGA  AudioFormat = "oga"
	FormatOGG  AudioFormat = "ogg"
	FormatWAV  AudioFormat = "wav"
	FormatWEBM AudioFormat = "webm"
)

// SupportedFormats is the fixed set the upstream accepts.
var SupportedFormats = []AudioFormat{
	FormatFLAC, FormatM4A, FormatMP3, FormatMP4, FormatMPEG,
	FormatMPGA, FormatOGA, FormatOGG, FormatWAV, FormatWEBM,
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	return AudioFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
}

// IsValidAudioFormat checks if the given format is supported
func IsValidAudioFormat(format AudioFormat) bool {
	return lo.Contains(SupportedFormats, format)
}

// CheckFormat fails for names the endpoint would reject by extension.
func CheckFormat(filename string) error {
	format := GetAudioFormatFromFilename(filename)
	if !IsValidAudioFormat(format) {
		if format == "" {
			return apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "'%s' has no file extension", filename)
		}
		return apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "'%s' (.%s)", filename, format)
	}
	return nil
}

// IsMP3 reports whether the file is MPEG audio by extension.
func IsMP3(filename string) bool {
	switch GetAudioFormatFromFilename(filename) {
	case FormatMP3, FormatMPGA, FormatMPEG:
		return true
	default:
		return false
	}
}
