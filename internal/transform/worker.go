package transform

import (
	"context"

	"github.com/ironsheep/blur-gate/internal/imaging"
)

// Request asks for Stages to be run on Source, in process via Execute or
// through a Serve loop.
type Request struct {
	ID     string
	Source *imaging.Buffer
	Stages []Stage
}

// Response carries the outcome of a Request. Exactly one of Buffer and Err
// is set.
type Response struct {
	ID     string
	Buffer *imaging.Buffer
	Err    error
}

// Execute runs a request synchronously.
func Execute(req Request) Response {
	out, err := Run(req.Source, req.Stages)
	if err != nil {
		return Response{ID: req.ID, Err: err}
	}
	return Response{ID: req.ID, Buffer: out}
}

// Serve is the worker loop for running pipelines off the caller's
// goroutine. It reads requests from in until in is closed or ctx is done,
// posting one response per request to out. It returns ctx.Err() when
// cancelled and nil when in is closed.
func Serve(ctx context.Context, in <-chan Request, out chan<- Response) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-in:
			if !ok {
				return nil
			}
			resp := Execute(req)
			select {
			case out <- resp:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
