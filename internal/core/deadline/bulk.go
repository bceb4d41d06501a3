package deadline

import (
	"context"

	"golang.org/x/sync/errgroup"

	perr "courtclock/internal/platform/errors"
)

// Coordinator runs the engine over a batch, isolating failures per item
type Coordinator struct {
	engine      *Engine
	parallelism int
}

// NewCoordinator returns a coordinator; parallelism <= 0 runs items one at a time
func NewCoordinator(e *Engine, parallelism int) *Coordinator {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Coordinator{engine: e, parallelism: parallelism}
}

// CalculateBulk returns one result per input in input order
// A failing item gets FailedResult and never stops its siblings
func (c *Coordinator) CalculateBulk(ctx context.Context, inputs []Input) []Result {
	out := make([]Result, len(inputs))
	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = FailedResult(perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled"))
				return nil
			}
			res, err := c.calculate(inputs[i])
			if err != nil {
				res = FailedResult(err)
			}
			out[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Coordinator) calculate(in Input) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.PanicErrf("calculation panicked: %v", r)
		}
	}()
	return c.engine.Calculate(in)
}
