package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure by who has to act on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindUserInput
	KindConfiguration
	KindRemoteService
	KindEnvironment
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindUserInput:
		return "user input"
	case KindConfiguration:
		return "configuration"
	case KindRemoteService:
		return "remote service"
	case KindEnvironment:
		return "environment"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Common error types
var (
	// Input errors
	ErrFileNotFound      = New("file not found").WithKind(KindUserInput)
	ErrNotAFile          = New("path is a directory").WithKind(KindUserInput)
	ErrUnsupportedFormat = New("unsupported audio format").WithKind(KindUserInput).WithGuidance(
		"Supported formats: flac, m4a, mp3, mp4, mpeg, mpga, oga, ogg, wav, webm",
		"Try converting to MP3",
	)

	// Configuration errors
	ErrMissingAPIKey = New("OpenAI API key not found").WithKind(KindConfiguration).WithGuidance(
		"Method 1 - As argument:   a2t interview.mp3 sk-YOUR_KEY_HERE",
		"Method 2 - As environment variable:   export OPENAI_API_KEY=sk-YOUR_KEY_HERE",
		"Get an API key at: https://platform.openai.com/api-keys",
	)
	ErrInvalidConfig  = New("invalid configuration").WithKind(KindConfiguration)
	ErrDecoderMissing = New("audio decoder not available").WithKind(KindConfiguration).WithGuidance(
		"Install ffmpeg (https://ffmpeg.org) or use --strategy bytes",
	)

	// Chunking errors
	ErrChunkingFailed = New("audio chunking failed").WithKind(KindEnvironment)
	ErrChunkTooLarge  = New("chunk exceeds the upload limit").WithKind(KindEnvironment).WithGuidance(
		"The source is probably variable bitrate; lower --safety-margin or --max-chunk-mb",
	)

	// Run control
	ErrInterrupted = New("interrupted by user").WithKind(KindInterrupted)
)

// Error represents a standardized error
type Error struct {
	kind     Kind
	message  string
	cause    error
	guidance []string
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context. The result inherits the kind
// of the wrapped error unless WithKind is applied.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// WithKind returns a copy of e classified as k.
func (e *Error) WithKind(k Kind) *Error {
	c := *e
	c.kind = k
	return &c
}

// WithGuidance returns a copy of e carrying additional hints for the user.
func (e *Error) WithGuidance(lines ...string) *Error {
	c := *e
	c.guidance = append(append([]string(nil), e.guidance...), lines...)
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind reports the classification set on e itself.
func (e *Error) Kind() Kind {
	return e.kind
}

// Guidance returns the hints attached to e itself.
func (e *Error) Guidance() []string {
	return e.guidance
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// KindOf returns the first classification found along err's chain.
func KindOf(err error) Kind {
	for err != nil {
		if k, ok := err.(interface{ Kind() Kind }); ok && k.Kind() != KindUnknown {
			return k.Kind()
		}
		err = stderrors.Unwrap(err)
	}
	return KindUnknown
}

// GuidanceOf collects user hints from every error along err's chain,
// outermost first.
func GuidanceOf(err error) []string {
	var lines []string
	for err != nil {
		if g, ok := err.(interface{ Guidance() []string }); ok {
			lines = append(lines, g.Guidance()...)
		}
		err = stderrors.Unwrap(err)
	}
	return lines
}

// Helper functions for common patterns

// UserInput returns a formatted user input error
func UserInput(format string, args ...interface{}) *Error {
	return Newf(format, args...).WithKind(KindUserInput)
}

// Configuration returns a formatted configuration error
func Configuration(format string, args ...interface{}) *Error {
	return Newf(format, args...).WithKind(KindConfiguration)
}

// Environment wraps a failure of the local machine (subprocess, filesystem).
func Environment(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Newf(format, args...).WithKind(KindEnvironment).WithCause(err)
}

// Is is errors.Is, re-exported so callers need one import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As, re-exported so callers need one import.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
