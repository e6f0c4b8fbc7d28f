package chunker

import (
	"context"

	"go.uber.org/zap"

	"a2t/internal/app/model"
)

// ByteSlicer cuts the source into fixed-size byte ranges. Nothing is
// copied: each unit is read through an io.SectionReader over the source.
// Fragments of most container formats are not decodable on their own, so
// every multi-unit plan logs a warning.
type ByteSlicer struct {
	logger *zap.Logger
}

func NewByteSlicer(logger *zap.Logger) *ByteSlicer {
	return &ByteSlicer{logger: logger}
}

func (s *ByteSlicer) Plan(ctx context.Context, info model.FileInfo, threshold int64) (*Plan, error) {
	if info.Size <= threshold {
		return singleUnitPlan(StrategyBytes, info), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := int((info.Size + threshold - 1) / threshold)
	units := make([]model.AudioUnit, 0, count)
	for offset := int64(0); offset < info.Size; offset += threshold {
		length := min(threshold, info.Size-offset)
		units = append(units, model.AudioUnit{
			Index:  len(units),
			Name:   info.Name,
			Path:   info.FullPath,
			Offset: offset,
			Length: length,
		})
	}

	s.logger.Warn("byte slicing may produce fragments the service cannot decode",
		zap.String("file", info.Name),
		zap.Int("units", len(units)),
		zap.Int64("threshold_bytes", threshold))

	return &Plan{Strategy: StrategyBytes, Units: units}, nil
}
