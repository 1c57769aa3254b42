package blur

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// FileResult is the outcome of scoring one file in a batch. Error is empty
// on success.
type FileResult struct {
	Path  string `json:"path"`
	Score *Score `json:"score,omitempty"`
	Error string `json:"error,omitempty"`
}

// MeasureFiles scores paths with at most limit files in flight (limit <= 0
// means one per path). A failing file is reported in its result and does not
// stop the batch. Results are returned in input order.
//
// Cancelling ctx stops files that have not started yet; they are reported
// with the context error.
func MeasureFiles(ctx context.Context, paths []string, cfg Config, limit int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i].Path = path
			if err := gctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			score, err := MeasureFile(path, cfg)
			if err != nil {
				imaging.Logger().Warn("blur batch: file skipped", "path", path, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			results[i].Score = &score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
