package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain error", err: fmt.Errorf("boom"), want: KindUnknown},
		{name: "sentinel", err: ErrFileNotFound, want: KindUserInput},
		{name: "wrapped sentinel", err: Wrapf(ErrFileNotFound, "inspect %s", "a.mp3"), want: KindUserInput},
		{name: "fmt wrapped sentinel", err: fmt.Errorf("run: %w", ErrMissingAPIKey), want: KindConfiguration},
		{name: "outer kind wins", err: Wrap(ErrChunkTooLarge, "x").(*Error).WithKind(KindRemoteService), want: KindRemoteService},
		{name: "environment helper", err: Environment(context.DeadlineExceeded, "ffprobe"), want: KindEnvironment},
		{name: "interrupted", err: Wrap(ErrInterrupted, "between units"), want: KindInterrupted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestIsMatchesThroughWrap(t *testing.T) {
	err := Wrapf(ErrFileNotFound, "/tmp/missing.mp3")
	assert.True(t, Is(err, ErrFileNotFound))
	assert.False(t, Is(err, ErrMissingAPIKey))
	assert.Equal(t, "/tmp/missing.mp3: file not found", err.Error())
}

func TestGuidanceOf(t *testing.T) {
	err := Wrap(ErrMissingAPIKey, "transcribe")
	lines := GuidanceOf(err)
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "OPENAI_API_KEY")

	assert.Empty(t, GuidanceOf(fmt.Errorf("no hints")))
}

func TestWithGuidanceDoesNotMutateSentinel(t *testing.T) {
	before := len(ErrChunkTooLarge.Guidance())
	_ = ErrChunkTooLarge.WithGuidance("extra")
	assert.Len(t, ErrChunkTooLarge.Guidance(), before)
}

func TestEnvironmentNil(t *testing.T) {
	assert.NoError(t, Environment(nil, "nothing"))
	assert.NoError(t, Wrap(nil, "nothing"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "remote service", KindRemoteService.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
