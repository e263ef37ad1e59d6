package document

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/palette"
)

// Validator checks the inputs of one instance. *registry.Registry
// satisfies it.
type Validator interface {
	Validate(ctx context.Context, inst palette.NodeInstance) error
}

// ValidateInputs validates every placed node with v, at most limit at a
// time (limit <= 0 means GOMAXPROCS). Every failure is reported, joined in
// placement order.
func (d *Document) ValidateInputs(ctx context.Context, v Validator, limit int) error {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]error, len(d.Nodes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, node := range d.Nodes {
		i, node := i, node
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = v.Validate(ctx, node)
			return nil
		})
	}

	// Only cancellation aborts the group.
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(results...)
}
