package chunker

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"a2t/internal/app/audio"
	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// DurationSlicer re-cuts the source into time spans sized from its average
// bitrate. Each span is written to its own file through the Decoder, so
// every unit is a complete audio file.
//
// The average bitrate is only an estimate for variable bitrate sources. A
// cut that still exceeds the threshold is split in half and cut again, up
// to maxDepth times.
type DurationSlicer struct {
	decoder  audio.Decoder
	margin   float64
	maxDepth int
	runID    string
	logger   *zap.Logger
}

func NewDurationSlicer(decoder audio.Decoder, margin float64, maxDepth int, runID string, logger *zap.Logger) *DurationSlicer {
	return &DurationSlicer{
		decoder:  decoder,
		margin:   margin,
		maxDepth: maxDepth,
		runID:    runID,
		logger:   logger,
	}
}

func (s *DurationSlicer) Plan(ctx context.Context, info model.FileInfo, threshold int64) (*Plan, error) {
	if info.Size <= threshold {
		return singleUnitPlan(StrategyDuration, info), nil
	}

	total, err := s.decoder.Duration(ctx, info.FullPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.Wrapf(err, "cannot measure duration of '%s'", info.Name)
	}
	if total <= 0 {
		return nil, apperrors.Environment(apperrors.ErrChunkingFailed, "'%s' reports no playable duration", info.Name)
	}

	budget := unitBudget(info.Size, total, threshold, s.margin)
	if budget <= 0 {
		return nil, apperrors.Environment(apperrors.ErrChunkingFailed, "cannot size chunks for '%s'", info.Name)
	}
	count := int(math.Ceil(float64(total) / float64(budget)))

	s.logger.Info("slicing by duration",
		zap.String("file", info.Name),
		zap.String("decoder", s.decoder.Name()),
		zap.Duration("total", total),
		zap.Duration("unit_budget", budget),
		zap.Int("units", count))

	dir, err := os.MkdirTemp("", fmt.Sprintf("a2t-%s-*", s.runID))
	if err != nil {
		return nil, apperrors.Environment(err, "cannot create temporary directory")
	}

	b := &planBuilder{
		slicer:    s,
		info:      info,
		threshold: threshold,
		plan:      &Plan{Strategy: StrategyDuration, dir: dir},
	}
	for i := 0; i < count; i++ {
		span := model.TimeSpan{
			Start: time.Duration(i) * budget,
			End:   min(time.Duration(i+1)*budget, total),
		}
		if err := b.cut(ctx, span, 0); err != nil {
			if cleanupErr := b.plan.Cleanup(); cleanupErr != nil {
				s.logger.Warn("failed to remove temporary files", zap.Error(cleanupErr))
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}
	}

	if covered := b.plan.Covered(); covered != total {
		s.logger.Debug("span coverage differs from probed duration",
			zap.Duration("covered", covered), zap.Duration("total", total))
	}
	return b.plan, nil
}

// unitBudget is the span length expected to encode to margin*threshold
// bytes, rounded to the millisecond.
func unitBudget(size int64, total time.Duration, threshold int64, margin float64) time.Duration {
	bytesPerSecond := float64(size) / total.Seconds()
	seconds := float64(threshold) / bytesPerSecond * margin
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
}

type planBuilder struct {
	slicer    *DurationSlicer
	info      model.FileInfo
	threshold int64
	plan      *Plan
}

func (b *planBuilder) cut(ctx context.Context, span model.TimeSpan, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	index := len(b.plan.Units)
	path := filepath.Join(b.plan.dir, partName(b.info.Name, index+1))

	if err := b.slicer.decoder.Cut(ctx, b.info.FullPath, path, span); err != nil {
		return err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return apperrors.Environment(err, "decoder produced no output for %s", span)
	}
	if stat.Size() == 0 {
		return apperrors.Environment(apperrors.ErrChunkingFailed, "decoder produced an empty chunk for %s", span)
	}

	if stat.Size() > b.threshold {
		b.slicer.logger.Warn("chunk exceeds threshold, source is probably variable bitrate",
			zap.String("span", span.String()),
			zap.Int64("bytes", stat.Size()),
			zap.Int64("threshold_bytes", b.threshold),
			zap.Int("depth", depth))

		if depth >= b.slicer.maxDepth {
			return apperrors.Wrapf(apperrors.ErrChunkTooLarge, "%s of '%s' is %d bytes after %d re-splits", span, b.info.Name, stat.Size(), depth)
		}
		if err := os.Remove(path); err != nil {
			return apperrors.Environment(err, "cannot remove oversized chunk")
		}

		mid := span.Start + span.Duration()/2
		if err := b.cut(ctx, model.TimeSpan{Start: span.Start, End: mid}, depth+1); err != nil {
			return err
		}
		return b.cut(ctx, model.TimeSpan{Start: mid, End: span.End}, depth+1)
	}

	b.plan.Units = append(b.plan.Units, model.AudioUnit{
		Index:  index,
		Name:   filepath.Base(path),
		Path:   path,
		Length: stat.Size(),
		Span:   &span,
	})
	b.slicer.logger.Debug("cut chunk",
		zap.Int("index", index),
		zap.String("span", span.String()),
		zap.Int64("bytes", stat.Size()))
	return nil
}

// partName is "<stem>_part<NNN><ext>" with a 1-based sequence number.
func partName(source string, seq int) string {
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(source, ext)
	return fmt.Sprintf("%s_part%03d%s", stem, seq, ext)
}
