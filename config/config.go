package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretLength = 16

// Config holds all environment variables for the storefront API.
type Config struct {
	Port   string
	AppEnv string

	MongoURI    string
	MongoDBName string

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL string
	CacheTTL time.Duration

	AllowedOrigins     []string
	ImagesDir          string
	StaticDir          string
	RequestTimeout     time.Duration
	RateLimitPerMinute int

	SeedOnStart   bool
	AdminEmail    string
	AdminPassword string

	MaxOrderItems int

	AWS AWSConfig
}

// AWSConfig covers the optional AWS integrations. Each one is disabled when
// its identifying setting (bucket, topic, flag) is empty.
type AWSConfig struct {
	Region            string
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	UseSecrets        bool
	S3Bucket          string
	S3Prefix          string
	S3Endpoint        string
	CloudFrontDomain  string
	OrderEventsTopic  string
	CloudWatchEnabled bool
	MetricsNamespace  string
}

// SecretSource resolves named secrets. Implemented by SecretsClient.
type SecretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads .env (if present) and the environment, overlays secrets from AWS
// Secrets Manager when AWS_USE_SECRETS=true, and validates the result. There
// are no fallback values for the database URI or the signing secret.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if cfg.AWS.UseSecrets {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if sm, err := NewSecretsClientFromConfig(ctx, cfg.AWS); err == nil {
			cfg.ApplySecrets(ctx, sm)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		MongoURI:           strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDBName:        os.Getenv("MONGO_DB_NAME"),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:           getDuration("TOKEN_TTL", 7*24*time.Hour),
		RedisURL:           os.Getenv("REDIS_URL"),
		CacheTTL:           getDuration("CACHE_TTL", 10*time.Minute),
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
		ImagesDir:          getEnv("IMAGES_DIR", "public/images"),
		StaticDir:          os.Getenv("STATIC_DIR"),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 100),
		SeedOnStart:        getBool("SEED_ON_START", true),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		MaxOrderItems:      getInt("MAX_ORDER_ITEMS", 5),
		AWS: AWSConfig{
			Region:            getEnv("AWS_REGION", "us-east-1"),
			Endpoint:          os.Getenv("AWS_ENDPOINT"),
			AccessKeyID:       os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
			UseSecrets:        os.Getenv("AWS_USE_SECRETS") == "true",
			S3Bucket:          os.Getenv("AWS_S3_BUCKET"),
			S3Prefix:          getEnv("AWS_S3_PREFIX", "products/"),
			S3Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
			CloudFrontDomain:  os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
			OrderEventsTopic:  os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
			CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
			MetricsNamespace:  getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		},
	}
	if cfg.AWS.S3Endpoint == "" {
		cfg.AWS.S3Endpoint = cfg.AWS.Endpoint
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = databaseFromURI(cfg.MongoURI)
	}
	return cfg
}

// ApplySecrets overrides the signing secret and database URI with values
// from src. Lookup failures keep the environment values.
func (c *Config) ApplySecrets(ctx context.Context, src SecretSource) {
	if v, err := src.GetSecret(ctx, "storefront/JWT_SECRET"); err == nil && v != "" {
		c.JWTSecret = strings.TrimSpace(v)
	}
	if v, err := src.GetSecret(ctx, "storefront/MONGO_URI"); err == nil && v != "" {
		c.MongoURI = strings.TrimSpace(v)
		if os.Getenv("MONGO_DB_NAME") == "" {
			c.MongoDBName = databaseFromURI(c.MongoURI)
		}
	}
}

// Validate enforces the settings the service cannot run without.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxOrderItems <= 0 {
		return fmt.Errorf("MAX_ORDER_ITEMS must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func databaseFromURI(uri string) string {
	if u, err := url.Parse(uri); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return "ecommerce"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "/")); p != "" {
			out = append(out, p)
		}
	}
	return out
}
