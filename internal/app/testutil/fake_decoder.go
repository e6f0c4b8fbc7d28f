package testutil

import (
	"context"
	"os"
	"sync"
	"time"

	"a2t/internal/app/model"
)

// FakeDecoder implements audio.Decoder without touching real audio. Cuts
// are filled with zeros sized at BytesPerSecond times the span length,
// multiplied by Inflate when set, which lets tests simulate variable
// bitrate sources.
type FakeDecoder struct {
	Total          time.Duration
	BytesPerSecond float64
	Inflate        func(span model.TimeSpan) float64

	AvailableErr error
	DurationErr  error
	CutErr       error

	mu   sync.Mutex
	cuts []model.TimeSpan
}

func (d *FakeDecoder) Name() string {
	return "fake"
}

func (d *FakeDecoder) Available() error {
	return d.AvailableErr
}

func (d *FakeDecoder) Duration(ctx context.Context, src string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if d.DurationErr != nil {
		return 0, d.DurationErr
	}
	return d.Total, nil
}

func (d *FakeDecoder) Cut(ctx context.Context, src, dst string, span model.TimeSpan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.cuts = append(d.cuts, span)
	d.mu.Unlock()

	if d.CutErr != nil {
		return d.CutErr
	}

	factor := 1.0
	if d.Inflate != nil {
		factor = d.Inflate(span)
	}
	size := int64(span.Duration().Seconds() * d.BytesPerSecond * factor)

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Cuts returns the spans requested so far, in order.
func (d *FakeDecoder) Cuts() []model.TimeSpan {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.TimeSpan(nil), d.cuts...)
}
