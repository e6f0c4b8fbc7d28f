package audio

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// framesPerContextCheck bounds how long a cancelled cut keeps running.
const framesPerContextCheck = 256

// MP3FrameDecoder cuts MPEG audio on frame boundaries without an external
// binary. Frames are copied verbatim, so every cut is playable on its own.
// Tags and junk between frames are dropped.
type MP3FrameDecoder struct{}

func NewMP3FrameDecoder() *MP3FrameDecoder {
	return &MP3FrameDecoder{}
}

func (d *MP3FrameDecoder) Name() string {
	return "mp3"
}

func (d *MP3FrameDecoder) Available() error {
	return nil
}

// Duration sums the duration of every frame in src.
func (d *MP3FrameDecoder) Duration(ctx context.Context, src string) (time.Duration, error) {
	var total time.Duration
	err := d.eachFrame(ctx, src, func(start time.Duration, frame *mp3.Frame) (bool, error) {
		total = start + frame.Duration()
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Cut copies the frames starting inside span to dst.
func (d *MP3FrameDecoder) Cut(ctx context.Context, src, dst string, span model.TimeSpan) error {
	out, err := os.Create(dst)
	if err != nil {
		return apperrors.Environment(err, "cannot create chunk file '%s'", dst)
	}
	w := bufio.NewWriter(out)

	err = d.eachFrame(ctx, src, func(start time.Duration, frame *mp3.Frame) (bool, error) {
		if start >= span.End {
			return false, nil
		}
		if start >= span.Start {
			if _, err := io.Copy(w, frame.Reader()); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err == nil {
		err = w.Flush()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return apperrors.Environment(err, "mp3 cut %s of '%s' failed", span, src)
	}
	return nil
}

// eachFrame decodes src and calls fn with each frame and its start offset
// until fn returns false or the stream ends.
func (d *MP3FrameDecoder) eachFrame(ctx context.Context, src string, fn func(start time.Duration, frame *mp3.Frame) (bool, error)) error {
	in, err := os.Open(src)
	if err != nil {
		return apperrors.Environment(err, "cannot open '%s'", src)
	}
	defer in.Close()

	decoder := mp3.NewDecoder(bufio.NewReader(in))

	var (
		frame   mp3.Frame
		skipped int
		elapsed time.Duration
		frames  int
	)
	for {
		if frames%framesPerContextCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return apperrors.Environment(err, "cannot decode MPEG frame %d of '%s'", frames, src)
		}

		more, err := fn(elapsed, &frame)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		elapsed += frame.Duration()
		frames++
	}

	if frames == 0 {
		return apperrors.Environment(apperrors.ErrChunkingFailed, "no MPEG audio frames found in '%s'", src)
	}
	return nil
}
