package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogerrors "storefront/internal/catalog/errors"
	"storefront/pkg/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindAll(ctx context.Context, filter model.ProductFilter, skip int64, limit int) ([]*model.Product, error)
	Count(ctx context.Context, filter model.ProductFilter) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]*model.Product, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, id string, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
	timeouts   Timeouts
}

func NewMongoProductRepository(db *mongo.Database, timeouts Timeouts) ProductRepository {
	return &mongoProductRepository{
		collection: db.Collection(ProductsCollection),
		timeouts:   timeouts,
	}
}

func productFilter(f model.ProductFilter) bson.M {
	filter := bson.M{}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.Featured {
		filter["featured"] = true
	}
	if f.Premium {
		filter["premium"] = true
	}
	if f.Custom {
		filter["custom"] = true
	}
	return filter
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *mongoProductRepository) Create(ctx context.Context, p *model.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	p.ID = ""
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []string{}
	}

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return writeErr("create product", err)
	}
	p.ID = insertedID(result)
	return nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context, filter model.ProductFilter, skip int64, limit int) ([]*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(limit)).
		SetSort(newestFirst)

	return r.find(ctx, productFilter(filter), opts)
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []*model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepository) Count(ctx context.Context, filter model.ProductFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, productFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

func (r *mongoProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.Count(ctx, model.ProductFilter{CategoryID: categoryID})
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Product](ctx, r.collection, bson.M{"_id": oid}, "product "+id)
}

func (r *mongoProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	return findOne[model.Product](ctx, r.collection, bson.M{"slug": slug}, "product "+slug)
}

// Search matches query case-insensitively against name and description. The
// query is matched literally.
func (r *mongoProductRepository) Search(ctx context.Context, query string, limit int) ([]*model.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		},
	}
	opts := options.Find().SetLimit(int64(limit)).SetSort(newestFirst)

	return r.find(ctx, filter, opts)
}

func (r *mongoProductRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeouts.Read)
	defer cancel()

	return slugTaken(ctx, r.collection, slug, excludeID)
}

func (r *mongoProductRepository) Update(ctx context.Context, id string, p *model.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	p.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if p.Images == nil {
		p.Images = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"name":         p.Name,
			"slug":         p.Slug,
			"description":  p.Description,
			"price":        p.Price,
			"price_amount": p.PriceAmount,
			"category_id":  p.CategoryID,
			"images":       p.Images,
			"featured":     p.Featured,
			"premium":      p.Premium,
			"custom":       p.Custom,
			"in_stock":     p.InStock,
			"updated_at":   p.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return writeErr("update product", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeouts.Write)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: product %s", catalogerrors.ErrNotFound, id)
	}
	return nil
}
