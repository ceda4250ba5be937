package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/repository"
	"github.com/yashrajoria/storefront/routes"
	"github.com/yashrajoria/storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "storefront-api"

// App is a fully wired storefront: connections, services and the gin engine.
// Both the long-running listener and the serverless handler build one.
type App struct {
	Config *config.Config
	Engine *gin.Engine
	Mongo  *database.Mongo
	Redis  *redis.Client

	Repos  Repositories
	Seeder *services.Seeder

	stop chan struct{}
}

// Repositories groups the Mongo repositories.
type Repositories struct {
	Users    *repository.UserRepository
	Products *repository.ProductRepository
	Reviews  *repository.ReviewRepository
	Orders   *repository.OrderRepository
}

// Connect opens MongoDB, ensures indexes and builds the repositories. Tools
// that only need persistence stop here.
func Connect(ctx context.Context, cfg *config.Config) (*database.Mongo, Repositories, error) {
	mongo, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, Repositories{}, err
	}
	if err := database.EnsureIndexes(ctx, mongo.DB); err != nil {
		zap.L().Warn("Failed to ensure indexes", zap.Error(err))
	}
	return mongo, Repositories{
		Users:    repository.NewUserRepository(mongo.DB),
		Products: repository.NewProductRepository(mongo.DB),
		Reviews:  repository.NewReviewRepository(mongo.DB),
		Orders:   repository.NewOrderRepository(mongo.DB),
	}, nil
}

// New connects to every backing service and wires the HTTP engine. Optional
// integrations (Redis, S3, SNS, CloudWatch) are skipped when not configured;
// a configured Redis that cannot be reached only disables the cache.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mongo, repos, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Product cache disabled", zap.Error(err))
		rdb = nil
	}

	aws := newAWSIntegrations(ctx, cfg)

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		_ = mongo.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	authService := services.NewAuthService(repos.Users, tokens, aws.metrics)
	catalogService := services.NewCatalogService(repos.Products, repos.Reviews, aws.metrics)
	orderService := services.NewOrderService(repos.Orders, repos.Users, repos.Products, aws.events, aws.metrics, cfg.MaxOrderItems)
	wishlistService := services.NewWishlistService(repos.Users, repos.Products)
	statsService := services.NewStatsService(repos.Products, repos.Orders, repos.Users)
	cartService := services.NewCartService(cfg.MaxOrderItems)

	var images controllers.ImageAPI
	if aws.presigner != nil {
		images = services.NewImageService(aws.presigner, services.ImageStorage{
			Bucket:           cfg.AWS.S3Bucket,
			Prefix:           cfg.AWS.S3Prefix,
			Region:           cfg.AWS.Region,
			CloudFrontDomain: cfg.AWS.CloudFrontDomain,
		}, repos.Products)
	}

	cache := controllers.NewCacheManager(rdb, cfg.CacheTTL, aws.metrics)
	authorizer := middleware.NewAuthorizer(tokens, repos.Users)

	a := &App{
		Config: cfg,
		Mongo:  mongo,
		Redis:  rdb,
		Repos:  repos,
		Seeder: services.NewSeeder(repos.Products, repos.Users, logger.Log),
		stop:   make(chan struct{}),
	}

	globalLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitPerMinute, 10*time.Minute)
	loginLimiter := middleware.NewRateLimiter(10, 5, 10*time.Minute)
	globalLimiter.StartCleanup(a.stop)
	loginLimiter.StartCleanup(a.stop)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(globalLimiter))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if aws.metrics != nil && aws.metrics.IsEnabled() {
		r.Use(middleware.Metrics(aws.metrics, serviceName))
	}

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:         controllers.NewAuthController(authService),
		Product:      controllers.NewProductController(catalogService, cache),
		Cart:         controllers.NewCartController(cartService),
		Order:        controllers.NewOrderController(orderService, authorizer),
		Wishlist:     controllers.NewWishlistController(wishlistService),
		Stats:        controllers.NewStatsController(statsService),
		Admin:        controllers.NewAdminController(catalogService, orderService, statsService, images, cache),
		Health:       controllers.NewHealthController(mongo),
		Authorizer:   authorizer,
		LoginLimiter: loginLimiter,
	})
	routes.RegisterStatic(r, cfg.ImagesDir, cfg.StaticDir)

	a.Engine = r
	return a, nil
}

// Seed inserts or refreshes the demo catalog and creates the bootstrap admin
// when ADMIN_EMAIL and ADMIN_PASSWORD are both set.
func (a *App) Seed(ctx context.Context) error {
	if _, err := a.Seeder.SeedCatalog(ctx); err != nil {
		return err
	}
	if a.Config.AdminEmail != "" && a.Config.AdminPassword != "" {
		if _, err := a.Seeder.SeedAdmin(ctx, a.Config.AdminEmail, a.Config.AdminPassword); err != nil {
			return err
		}
	}
	return nil
}

// Close stops background work and closes every connection.
func (a *App) Close() {
	close(a.stop)
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := a.Mongo.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}
}
