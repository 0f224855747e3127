package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogerrors "storefront/internal/catalog/errors"
	mongodb "storefront/pkg/db/mongo"
)

const (
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	ReviewsCollection    = "reviews"
)

// Timeouts bound every repository call that arrives without a tighter
// deadline.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
}

// withTimeout uses the shorter of the caller's remaining deadline and
// timeout.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}
	return oid, nil
}

func insertedID(result *mongo.InsertOneResult) string {
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

// writeErr maps driver errors to catalog sentinels.
func writeErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", catalogerrors.ErrDuplicateSlug, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, what string) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, what)
		}
		return nil, fmt.Errorf("failed to find %s: %w", what, err)
	}
	return &out, nil
}

func slugTaken(ctx context.Context, coll *mongo.Collection, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}
	n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slug %q: %w", slug, err)
	}
	return n > 0, nil
}

// Indexes lists the indexes the catalog relies on: unique slugs, and the
// fields listings filter and sort by.
func Indexes() []mongodb.IndexSpec {
	return []mongodb.IndexSpec{
		{
			Collection: CategoriesCollection,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			Collection: ProductsCollection,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "created_at", Value: -1}}},
				{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "created_at", Value: -1}}},
			},
		},
		{
			Collection: ReviewsCollection,
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}},
			},
		},
	}
}
