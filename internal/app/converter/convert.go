package converter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"a2t/internal/app/api"
	"a2t/internal/app/audio"
	"a2t/internal/app/chunker"
	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/metrics"
	"a2t/internal/app/model"
	"a2t/internal/app/transcript"
	"a2t/internal/config"
)

// ChunkerFactory returns the chunker to use for the source at path.
type ChunkerFactory func(path string) (chunker.Chunker, error)

// Result describes a finished run.
type Result struct {
	Input      model.FileInfo
	OutputPath string
	Text       string
	Strategy   string
	Units      int
	Stats      transcript.Stats
	Elapsed    time.Duration
}

type Converter struct {
	cfg         *config.Config
	transcriber api.Transcriber
	chunkers    ChunkerFactory
	metrics     *metrics.Recorder
	progress    ProgressConfig
	logger      *zap.Logger
}

func NewConverter(cfg *config.Config, transcriber api.Transcriber, chunkers ChunkerFactory,
	recorder *metrics.Recorder, progress ProgressConfig, logger *zap.Logger) *Converter {
	return &Converter{
		cfg:         cfg,
		transcriber: transcriber,
		chunkers:    chunkers,
		metrics:     recorder,
		progress:    progress,
		logger:      logger,
	}
}

// Metrics returns the recorder the converter reports to.
func (c *Converter) Metrics() *metrics.Recorder {
	return c.metrics
}

// Do transcribes the audio file at input and writes the transcript next to
// it, or into the configured output directory. Units are uploaded one at a
// time, in order. The transcript is only written when every unit succeeded;
// temporary files are removed on every path out.
func (c *Converter) Do(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRun(time.Since(start))
	}()

	c.logger.Debug("state", zap.String("state", "validating"), zap.String("input", input))
	info, err := audio.Inspect(input)
	if err != nil {
		return nil, err
	}
	if err := audio.CheckFormat(info.Name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, interrupted(err)
	}

	c.logger.Info("processing file",
		zap.String("file", info.Name),
		zap.String("size", formatMB(info.Size)),
		zap.String("threshold", formatMB(c.cfg.MaxChunkBytes())))

	c.logger.Debug("state", zap.String("state", "chunking"))
	slicer, err := c.chunkers(info.FullPath)
	if err != nil {
		return nil, err
	}
	plan, err := slicer.Plan(ctx, info, c.cfg.MaxChunkBytes())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, interrupted(ctxErr)
		}
		return nil, apperrors.Wrapf(err, "cannot split '%s'", info.Name)
	}
	defer func() {
		if err := plan.Cleanup(); err != nil {
			c.logger.Warn("failed to remove temporary files", zap.String("dir", plan.Dir()), zap.Error(err))
		}
	}()

	total := len(plan.Units)
	c.metrics.SetUnits(total)
	if total > 1 {
		c.logger.Info("file exceeds the upload limit, transcribing in chunks",
			zap.Int("units", total),
			zap.String("strategy", plan.Strategy))
	}

	c.logger.Debug("state", zap.String("state", "transcribing"))
	parts, err := c.transcribeAll(ctx, plan)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("state", zap.String("state", "assembling"))
	text := parts.String()
	output := transcript.OutputPath(info.FullPath, c.cfg.OutputDir)

	if err := ctx.Err(); err != nil {
		return nil, interrupted(err)
	}
	c.logger.Debug("state", zap.String("state", "writing"), zap.String("output", output))
	if err := transcript.Write(output, text); err != nil {
		return nil, err
	}

	result := &Result{
		Input:      info,
		OutputPath: output,
		Text:       text,
		Strategy:   plan.Strategy,
		Units:      total,
		Stats:      transcript.StatsOf(text),
		Elapsed:    time.Since(start),
	}
	c.logger.Debug("state", zap.String("state", "done"), zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (c *Converter) transcribeAll(ctx context.Context, plan *chunker.Plan) (*transcript.Transcript, error) {
	total := len(plan.Units)

	progress := NewProgressManager(c.progress)
	bar := progress.CreateBar(total, "Transcribing")
	defer progress.Wait()

	parts := &transcript.Transcript{}
	for _, unit := range plan.Units {
		if err := ctx.Err(); err != nil {
			bar.Abort()
			return nil, interrupted(err)
		}

		fields := []zap.Field{
			zap.Int("unit", unit.Index+1),
			zap.Int("of", total),
			zap.String("size", formatMB(unit.Size())),
		}
		if unit.Span != nil {
			fields = append(fields, zap.String("span", unit.Span.String()))
		}
		c.logger.Info("transcribing", fields...)

		text, err := c.transcriber.Transcribe(ctx, unit)
		if err != nil {
			c.metrics.ObserveUpload(metrics.OutcomeFailure, unit.Size())
			bar.Abort()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, interrupted(ctxErr)
			}
			if total == 1 {
				return nil, err
			}
			return nil, apperrors.Wrapf(err, "unit %d of %d failed", unit.Index+1, total)
		}

		c.metrics.ObserveUpload(metrics.OutcomeSuccess, unit.Size())
		bar.Increment()
		parts.Add(text)
	}
	return parts, nil
}

func interrupted(cause error) error {
	return apperrors.ErrInterrupted.WithCause(cause)
}

func formatMB(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
