package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/pkg/locale"
	"storefront/pkg/logger"
)

var (
	reMongoScheme      = regexp.MustCompile(`^mongodb(\+srv)?://`)
	reMongoCredentials = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	// Per-operation deadlines for repository calls.
	MongoReadTimeout  time.Duration
	MongoWriteTimeout time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Country       string
	StorefrontURL string
	ContactPhone  string
	SearchLimit   int

	AdminUsername     string
	AdminPasswordHash string
	AdminToken        string

	KafkaBrokers             []string
	KafkaTopic               string
	KafkaProducerCompression string
	KafkaProducerRequireAcks int
	KafkaProducerMaxAttempts int
	KafkaProducerBatchTimout time.Duration

	Log   *logger.Logger
	Mongo *mongo.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		MongoReadTimeout:  getEnvDuration(EnvMongoReadTimeout, DefaultMongoReadTimeout),
		MongoWriteTimeout: getEnvDuration(EnvMongoWriteTimeout, DefaultMongoWriteTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Country:       strings.ToUpper(getEnvStr(EnvCountry, DefaultCountry)),
		StorefrontURL: strings.TrimRight(getEnvStr(EnvStorefrontURL, DefaultStorefrontURL), "/"),
		ContactPhone:  getEnvStr(EnvContactPhone, ""),
		SearchLimit:   getEnvNum(EnvSearchLimit, DefaultSearchLimit),

		AdminUsername:     getEnvStr(EnvAdminUsername, DefaultAdminUsername),
		AdminPasswordHash: getEnvStr(EnvAdminPasswordHash, ""),
		AdminToken:        getEnvStr(EnvAdminToken, ""),

		KafkaBrokers:             getEnvList(EnvKafkaBrokers, nil),
		KafkaTopic:               getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),
		KafkaProducerCompression: getEnvStr(EnvKafkaProducerCompression, DefaultKafkaProducerCompression),
		KafkaProducerRequireAcks: getEnvNum(EnvKafkaProducerRequireAcks, DefaultKafkaProducerRequireAcks),
		KafkaProducerMaxAttempts: getEnvNum(EnvKafkaProducerMaxAttempts, DefaultKafkaProducerMaxAttempts),
		KafkaProducerBatchTimout: getEnvDuration(EnvKafkaProducerBatchTimout, DefaultKafkaProducerBatchTimout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// Locale returns the store's country. Validate guarantees it is known.
func (cfg *Config) Locale() locale.Country {
	if c, ok := locale.Lookup(cfg.Country); ok {
		return c
	}
	return locale.Default()
}

// KafkaEnabled reports whether catalog events go to Kafka. Without brokers
// events are dropped.
func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !reMongoScheme.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout":  cfg.MongoConnTimeout,
		"MongoReadTimeout":  cfg.MongoReadTimeout,
		"MongoWriteTimeout": cfg.MongoWriteTimeout,
		"RequestTimeout":    cfg.RequestTimeout,
		"ReadTimeout":       cfg.ReadTimeout,
		"WriteTimeout":      cfg.WriteTimeout,
		"IdleTimeout":       cfg.IdleTimeout,
		"ShutdownTimeout":   cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.SearchLimit < 1 || cfg.SearchLimit > 100 {
		errors = append(errors, fmt.Sprintf("SearchLimit must be between 1 and 100, got: %d", cfg.SearchLimit))
	}

	if _, ok := locale.Lookup(cfg.Country); !ok {
		errors = append(errors, fmt.Sprintf("Country %q is not supported", cfg.Country))
	}
	if u, err := url.Parse(cfg.StorefrontURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("StorefrontURL must be an absolute URL, got: %s", cfg.StorefrontURL))
	}
	if err := validatePhone(cfg.ContactPhone, cfg.Country); err != nil {
		errors = append(errors, err.Error())
	}

	if cfg.AdminUsername == "" {
		errors = append(errors, "AdminUsername cannot be empty")
	}
	if cfg.AdminPasswordHash == "" {
		errors = append(errors, "AdminPasswordHash cannot be empty")
	}
	if len(cfg.AdminToken) < 16 {
		errors = append(errors, "AdminToken must be at least 16 characters")
	}

	if cfg.KafkaEnabled() {
		if cfg.KafkaTopic == "" {
			errors = append(errors, "KafkaTopic cannot be empty when brokers are set")
		}
		if !slices.Contains([]string{"none", "gzip", "snappy", "lz4", "zstd"}, cfg.KafkaProducerCompression) {
			errors = append(errors, fmt.Sprintf("KafkaProducerCompression must be one of none, gzip, snappy, lz4, zstd, got: %s", cfg.KafkaProducerCompression))
		}
		if cfg.KafkaProducerRequireAcks < -1 || cfg.KafkaProducerRequireAcks > 1 {
			errors = append(errors, fmt.Sprintf("KafkaProducerRequireAcks must be -1, 0 or 1, got: %d", cfg.KafkaProducerRequireAcks))
		}
		if cfg.KafkaProducerMaxAttempts < 1 {
			errors = append(errors, fmt.Sprintf("KafkaProducerMaxAttempts must be positive, got: %d", cfg.KafkaProducerMaxAttempts))
		}
	}

	if len(errors) > 0 {
		slices.Sort(errors)
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func validatePhone(phone, region string) error {
	if phone == "" {
		return fmt.Errorf("ContactPhone cannot be empty")
	}
	num, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("ContactPhone is not a valid phone number for %s, got: %s", region, phone)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"mongo_read_timeout", cfg.MongoReadTimeout,
		"mongo_write_timeout", cfg.MongoWriteTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"country", cfg.Country,
		"storefront_url", cfg.StorefrontURL,
		"contact_phone_set", cfg.ContactPhone != "",
		"search_limit", cfg.SearchLimit,
		"admin_username", cfg.AdminUsername,
		"admin_token_set", cfg.AdminToken != "",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"kafka_compression", cfg.KafkaProducerCompression,
	)
}

func redactMongoURI(uri string) string {
	return reMongoCredentials.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
