package main

import (
	"context"
	"time"

	migration "storefront/internal/migrations/mongo"
	"storefront/pkg/config"
	mongodb "storefront/pkg/db/mongo"
)

const jobName = "catalog-migrate"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load(jobName)
	cfg.Log.Info("Starting Mongo migration job")

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	err = migration.RunMigration(ctx, client.Database(cfg.MongoDatabaseName), cfg.Log)
	if dErr := client.Disconnect(context.Background()); dErr != nil {
		cfg.Log.Error("Failed to disconnect from MongoDB", "error", dErr)
	}
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
