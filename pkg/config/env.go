package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvMongoReadTimeout  = "MONGO_READ_TIMEOUT"
	EnvMongoWriteTimeout = "MONGO_WRITE_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCountry       = "STORE_COUNTRY"
	EnvStorefrontURL = "STOREFRONT_URL"
	EnvContactPhone  = "CONTACT_PHONE"
	EnvSearchLimit   = "SEARCH_LIMIT"

	EnvAdminUsername     = "ADMIN_USERNAME"
	EnvAdminPasswordHash = "ADMIN_PASSWORD_HASH"
	EnvAdminToken        = "ADMIN_TOKEN"

	EnvKafkaBrokers             = "KAFKA_BROKERS"
	EnvKafkaTopic               = "KAFKA_CATALOG_TOPIC"
	EnvKafkaProducerCompression = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaProducerRequireAcks = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerMaxAttempts = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimout = "KAFKA_PRODUCER_BATCH_TIMEOUT"

	EnvAPIBaseURL    = "CATALOG_API_URL"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvTokenKey      = "AUTH_TOKEN_KEY"
	EnvTokenTTL      = "AUTH_TOKEN_TTL"
)
