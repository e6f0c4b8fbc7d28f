package chunker

import (
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"a2t/internal/app/model"
)

// Plan is the ordered list of units to upload for one input file. A plan
// built by duration slicing owns a temporary directory; Cleanup removes it.
type Plan struct {
	Strategy string
	Units    []model.AudioUnit

	dir         string
	cleanupOnce sync.Once
	cleanupErr  error
}

// Dir is the temporary directory owned by the plan, empty when the plan
// reads straight from the source file.
func (p *Plan) Dir() string {
	return p.dir
}

// TotalBytes is the number of bytes the plan uploads.
func (p *Plan) TotalBytes() int64 {
	return lo.SumBy(p.Units, func(u model.AudioUnit) int64 {
		return u.Size()
	})
}

// Covered is the source time covered by duration-sliced units.
func (p *Plan) Covered() time.Duration {
	return lo.SumBy(p.Units, func(u model.AudioUnit) time.Duration {
		if u.Span == nil {
			return 0
		}
		return u.Span.Duration()
	})
}

// Cleanup removes every temporary file of the plan. It is safe to call more
// than once and on a nil plan.
func (p *Plan) Cleanup() error {
	if p == nil || p.dir == "" {
		return nil
	}
	p.cleanupOnce.Do(func() {
		var result *multierror.Error
		for _, u := range p.Units {
			if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
				result = multierror.Append(result, err)
			}
		}
		if err := os.RemoveAll(p.dir); err != nil {
			result = multierror.Append(result, err)
		}
		p.cleanupErr = result.ErrorOrNil()
	})
	return p.cleanupErr
}

func singleUnitPlan(strategy string, info model.FileInfo) *Plan {
	return &Plan{
		Strategy: strategy,
		Units: []model.AudioUnit{{
			Index:  0,
			Name:   info.Name,
			Path:   info.FullPath,
			Length: info.Size,
		}},
	}
}
