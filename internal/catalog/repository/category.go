package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogerrors "storefront/internal/catalog/errors"
	"storefront/pkg/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindAll(ctx context.Context) ([]*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, id string, c *model.Category) error
	Delete(ctx context.Context, id string) error
}

type mongoCategoryRepository struct {
	collection *mongo.Collection
	timeouts   Timeouts
}

func NewMongoCategoryRepository(db *mongo.Database, timeouts Timeouts) CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(CategoriesCollection),
		timeouts:   timeouts,
	}
}

func (r *mongoCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	c.ID = ""
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		return writeErr("create category", err)
	}
	c.ID = insertedID(result)
	return nil
}

func (r *mongoCategoryRepository) FindAll(ctx context.Context) ([]*model.Category, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []*model.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *mongoCategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Category](ctx, r.collection, bson.M{"_id": oid}, "category "+id)
}

func (r *mongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	return findOne[model.Category](ctx, r.collection, bson.M{"slug": slug}, "category "+slug)
}

func (r *mongoCategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	return slugTaken(ctx, r.collection, slug, excludeID)
}

func (r *mongoCategoryRepository) Update(ctx context.Context, id string, c *model.Category) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	c.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":        c.Name,
			"slug":        c.Slug,
			"description": c.Description,
			"image":       c.Image,
			"updated_at":  c.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return writeErr("update category", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: category %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: category %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}
