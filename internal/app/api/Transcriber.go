package api

import (
	"context"

	"a2t/internal/app/model"
)

// Transcriber converts one audio unit to text.
type Transcriber interface {
	Transcribe(ctx context.Context, unit model.AudioUnit) (string, error)
}
