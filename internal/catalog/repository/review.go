package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/pkg/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type mongoReviewRepository struct {
	collection *mongo.Collection
	timeouts   Timeouts
}

func NewMongoReviewRepository(db *mongo.Database, timeouts Timeouts) ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(ReviewsCollection),
		timeouts:   timeouts,
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	review.ID = ""
	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return writeErr("create review", err)
	}
	review.ID = insertedID(result)
	return nil
}

func (r *mongoReviewRepository) FindByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *mongoReviewRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}
	return result.DeletedCount, nil
}
