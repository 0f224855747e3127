// Package mongo prepares the catalog database: collections with document
// validators, then the indexes the repositories rely on.
package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/catalog/repository"
	mongodb "storefront/pkg/db/mongo"
	"storefront/pkg/logger"
)

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running catalog Mongo migrations", "database", db.Name())

	validators := Validators()
	names := make([]string, 0, len(validators))
	for name := range validators {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ensureCollection(ctx, db, name, validators[name], log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
	}

	if err := mongodb.EnsureIndexes(ctx, db, repository.Indexes()...); err != nil {
		return err
	}

	log.Info("All migrations applied successfully", "collections", names)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed to update collection validator", "collection", name, "error", err)
	}
	return nil
}
