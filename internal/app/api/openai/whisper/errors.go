package whisper

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	apperrors "a2t/internal/app/errors"
)

// Error codes reported by TranscriptionError.
const (
	CodeInvalidCredential = "invalid_credential"
	CodeQuotaExceeded     = "quota_exceeded"
	CodePayloadTooLarge   = "payload_too_large"
	CodeUnsupportedFormat = "unsupported_format"
	CodeRemote            = "remote_error"
)

// TranscriptionError is a failure reported by the transcription service.
type TranscriptionError struct {
	Code        string
	Message     string
	StatusCode  int
	Suggestions []string

	cause error
}

func (e *TranscriptionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.cause
}

func (e *TranscriptionError) Kind() apperrors.Kind {
	return apperrors.KindRemoteService
}

func (e *TranscriptionError) Guidance() []string {
	return e.Suggestions
}

// handleAPIError converts OpenAI API errors to TranscriptionError
func handleAPIError(err error) error {
	var (
		status  int
		code    string
		message string
	)

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case apperrors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		code, _ = apiErr.Code.(string)
		message = apiErr.Message
	case apperrors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
		message = strings.TrimSpace(string(reqErr.Body))
		if message == "" {
			message = reqErr.Error()
		}
	default:
		return &TranscriptionError{
			Code:        CodeRemote,
			Message:     fmt.Sprintf("transcription request failed: %v", err),
			Suggestions: []string{"Check your network connection and --base-url"},
			cause:       err,
		}
	}

	te := &TranscriptionError{StatusCode: status, cause: err}
	switch {
	case status == http.StatusUnauthorized || code == "invalid_api_key":
		te.Code = CodeInvalidCredential
		te.Message = "OpenAI API key is invalid or missing"
		te.Suggestions = []string{
			"Check that the key is correct and has not been revoked",
			"Get an API key at: https://platform.openai.com/api-keys",
		}
	case status == http.StatusTooManyRequests || code == "insufficient_quota":
		te.Code = CodeQuotaExceeded
		te.Message = "OpenAI API quota or rate limit exceeded"
		te.Suggestions = []string{
			"Add a payment method or raise the limit at https://platform.openai.com/account/billing",
			"Wait a moment and try again",
		}
	case status == http.StatusRequestEntityTooLarge:
		te.Code = CodePayloadTooLarge
		te.Message = "Audio file is too large for OpenAI API"
		te.Suggestions = []string{"Lower --max-chunk-mb so chunks stay under 25 MB"}
	case status == http.StatusBadRequest && mentionsFormat(message):
		te.Code = CodeUnsupportedFormat
		te.Message = fmt.Sprintf("the service rejected the audio: %s", message)
		te.Suggestions = []string{"Convert the file to MP3 and try again"}
	default:
		te.Code = CodeRemote
		te.Message = fmt.Sprintf("transcription failed: %s", message)
	}
	return te
}

func mentionsFormat(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "format") || strings.Contains(m, "file")
}
