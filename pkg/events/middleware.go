package events

import (
	"context"
	"time"

	"storefront/pkg/logger"
)

type Middleware func(next Handler) Handler

// Chain wraps h so the first middleware runs outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func WithLogging(log *logger.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, e CatalogEvent, meta Metadata) error {
			start := time.Now()
			err := next(ctx, e, meta)
			attrs := []any{
				"event_id", meta.EventID,
				"event_type", e.Name(),
				"key", e.Key(),
				"partition", meta.Partition,
				"offset", meta.Offset,
				"duration", time.Since(start),
			}
			if err != nil {
				log.Error("Failed to handle catalog event", append(attrs, "error", err)...)
				return err
			}
			log.Debug("Handled catalog event", attrs...)
			return nil
		}
	}
}

// WithEntities drops events for entities outside the given set. An empty set
// lets everything through.
func WithEntities(entities ...Entity) Middleware {
	return func(next Handler) Handler {
		if len(entities) == 0 {
			return next
		}
		return func(ctx context.Context, e CatalogEvent, meta Metadata) error {
			for _, want := range entities {
				if e.Entity == want {
					return next(ctx, e, meta)
				}
			}
			return nil
		}
	}
}
