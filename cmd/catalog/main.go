package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/catalog/handler"
	"storefront/internal/catalog/repository"
	"storefront/internal/catalog/service"
	"storefront/pkg/app"
	"storefront/pkg/config"
	"storefront/pkg/currency"
	mongodb "storefront/pkg/db/mongo"
	"storefront/pkg/events"
	"storefront/pkg/validator"
)

const serviceName = "catalog"

func main() {
	cfg := config.Load(serviceName)
	cfg.Log.Info("Starting Catalog service")

	mongoClient, err := mongodb.Connect(context.Background(), cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	cfg.Mongo = mongoClient
	cfg.Log.Info("Successfully connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabaseName)
	ensureIndexes(cfg, db)

	publisher := initPublisher(cfg)

	application := app.NewApplication(cfg)
	application.SetApp(
		handler.NewHealthHandler(mongoClient, cfg.Log),
		initHandlers(cfg, db, publisher),
	)
	application.OnShutdown("event publisher", func(context.Context) error {
		return publisher.Close()
	})
	application.OnShutdown("mongodb", mongoClient.Disconnect)

	application.Run()
}

func ensureIndexes(cfg *config.Config, db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx, db, repository.Indexes()...); err != nil {
		cfg.Log.Fatal("Failed to ensure MongoDB indexes", "error", err)
	}
	cfg.Log.Info("MongoDB indexes ensured")
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Warn("No Kafka brokers configured, catalog events are dropped")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		Compression:  cfg.KafkaProducerCompression,
		RequiredAcks: cfg.KafkaProducerRequireAcks,
		MaxAttempts:  cfg.KafkaProducerMaxAttempts,
		BatchTimeout: cfg.KafkaProducerBatchTimout,
		Source:       serviceName,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publisher initialized", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return publisher
}

func initHandlers(cfg *config.Config, db *mongo.Database, publisher events.Publisher) *handler.CatalogHandler {
	timeouts := repository.Timeouts{Read: cfg.MongoReadTimeout, Write: cfg.MongoWriteTimeout}
	categoryRepo := repository.NewMongoCategoryRepository(db, timeouts)
	productRepo := repository.NewMongoProductRepository(db, timeouts)
	reviewRepo := repository.NewMongoReviewRepository(db, timeouts)

	v := validator.New(validator.WithCurrency(currency.NewCodec(cfg.Locale())))

	categoryService := service.NewCategoryService(categoryRepo, productRepo, v, publisher, cfg)
	productService := service.NewProductService(productRepo, categoryRepo, reviewRepo, v, publisher, cfg)
	reviewService := service.NewReviewService(reviewRepo, productRepo, v, publisher, cfg)
	authService := service.NewAuthService(v, cfg)
	cfg.Log.Info("Catalog services initialized")

	return handler.NewCatalogHandler(
		handler.NewCategoryHandler(categoryService, cfg.Log),
		handler.NewProductHandler(productService, cfg.Log),
		handler.NewReviewHandler(reviewService, cfg.Log),
		handler.NewAuthHandler(authService, cfg.Log),
		cfg.AdminToken,
		cfg.Log,
	)
}
