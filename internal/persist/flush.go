package persist

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Flusher persists one batch of in-memory state to its backing store.
// cmd/worldserver wires one Flusher per joined player (kind "player")
// so BatchFlush can fan them out independently.
type Flusher interface {
	Kind() string
	Flush(ctx context.Context) error
}

// FuncFlusher adapts a plain function to Flusher.
type FuncFlusher struct {
	KindName string
	Fn       func(ctx context.Context) error
}

func (f FuncFlusher) Kind() string                        { return f.KindName }
func (f FuncFlusher) Flush(ctx context.Context) error { return f.Fn(ctx) }

// BatchFlush runs every flusher concurrently, bounded by maxConcurrent,
// and returns the first error encountered (the rest still run to
// completion since errgroup only cancels the shared context). Used on
// graceful shutdown to drain dirty entity state.
func BatchFlush(ctx context.Context, flushers []Flusher, maxConcurrent int, log *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	for _, f := range flushers {
		f := f
		g.Go(func() error {
			if err := f.Flush(ctx); err != nil {
				log.Error("flush failed", zap.String("kind", f.Kind()), zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
