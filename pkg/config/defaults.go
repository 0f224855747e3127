package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "storefront"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultMongoReadTimeout  = 5 * time.Second
	DefaultMongoWriteTimeout = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCountry       = "IN"
	DefaultStorefrontURL = "http://localhost:3000"
	DefaultSearchLimit   = 20

	DefaultAdminUsername = "admin"

	DefaultKafkaTopic               = "catalog.events"
	DefaultKafkaProducerCompression = "snappy"
	DefaultKafkaProducerRequireAcks = -1
	DefaultKafkaProducerMaxAttempts = 3
	DefaultKafkaProducerBatchTimout = 10 * time.Millisecond

	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultRedisDB    = 0
	DefaultTokenTTL   = 24 * time.Hour
)
