package service

import (
	"context"
	"errors"
	"strings"

	catalogerrors "storefront/internal/catalog/errors"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/sanitizer"
)

const maxSlugAttempts = 5

type slugLookup func(ctx context.Context, slug, excludeID string) (bool, error)

// baseSlug prefers the explicit slug, then the name. Input that normalizes
// to nothing gets a random slug.
func baseSlug(explicit, name string) string {
	if s := sanitizer.GenerateSlug(explicit); s != "" {
		return s
	}
	if s := sanitizer.GenerateSlug(name); s != "" {
		return s
	}
	return randomSlugPart()
}

func randomSlugPart() string {
	return strings.ToLower(sanitizer.GenerateRandomString(sanitizer.DefaultRandomLength))
}

// uniqueSlug returns base when it is free, otherwise base with a random
// suffix. The result never exceeds maxLen.
func uniqueSlug(ctx context.Context, taken slugLookup, base, excludeID string, maxLen int) (string, error) {
	slug := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		exists, err := taken(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}

		suffix := "-" + randomSlugPart()
		stem := base
		if len(stem)+len(suffix) > maxLen {
			stem = strings.TrimRight(stem[:maxLen-len(suffix)], "-")
		}
		slug = stem + suffix
	}
	return "", apperrors.Conflict("Could not allocate a unique slug for " + base)
}

// repoErr maps repository sentinels to application errors. Anything else
// becomes an internal error carrying op.
func repoErr(err error, resource, id, op string) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, catalogerrors.ErrNotFound):
		if id == "" {
			return apperrors.NotFound(resource)
		}
		return apperrors.NotFoundWithID(resource, id)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid " + strings.ToLower(resource) + " ID format")
	case errors.Is(err, catalogerrors.ErrDuplicateSlug):
		return apperrors.Conflict(resource + " slug already exists")
	default:
		return apperrors.Internal(op, err)
	}
}

// publish reports a change. Delivery failures are logged and never fail the
// write that caused them.
func publish(ctx context.Context, p events.Publisher, log *logger.Logger, event events.CatalogEvent) {
	if err := p.Publish(ctx, event); err != nil {
		log.Error("Failed to publish catalog event",
			"event", event.Name(),
			"id", event.ID,
			"error", err,
		)
	}
}
