package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NgocDuong9/be-betaw/common/logger"
	"github.com/NgocDuong9/be-betaw/config"
	"github.com/NgocDuong9/be-betaw/controllers"
	"github.com/NgocDuong9/be-betaw/database"
	"github.com/NgocDuong9/be-betaw/repository"
	"github.com/NgocDuong9/be-betaw/routes"
	"github.com/NgocDuong9/be-betaw/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// --- Storage backends ---

	mongoClient, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		zap.L().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zap.L().Warn("failed to ensure indexes", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("failed to connect to Redis", zap.Error(err))
	}

	s3Client := newR2Client(ctx, cfg)

	// --- Wiring ---

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo)
	storageService := services.NewStorageService(s3Client, cfg.R2Bucket, cfg.R2PublicURL)

	seeder := database.NewSeeder(productRepo, userRepo)
	if !cfg.IsProduction() {
		if err := seeder.Run(ctx); err != nil {
			zap.L().Warn("database seeding failed", zap.Error(err))
		}
	}

	cache := controllers.NewCacheManager(rdb, cfg.CacheTTL)

	ctl := routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Products: controllers.NewProductController(productService, cache),
		Cart:     controllers.NewCartController(cartService),
		Orders:   controllers.NewOrderController(orderService),
		Users:    controllers.NewUserController(userService),
		Admin:    controllers.NewAdminController(orderService, productService, userService),
		Upload:   controllers.NewUploadController(storageService),
		Database: controllers.NewDatabaseController(seeder, cfg.IsProduction()),
	}

	// --- HTTP server ---

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(reqCtx)
		c.Next()
	})

	routes.Register(r, tokenService, ctl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		zap.L().Error("failed to close Redis", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		zap.L().Error("failed to disconnect MongoDB", zap.Error(err))
	}

	zap.L().Info("server stopped")
}

// newR2Client builds an S3 client pointed at the Cloudflare R2
// endpoint for the configured account.
func newR2Client(ctx context.Context, cfg *config.Config) *s3.Client {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion("auto"),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, ""),
		),
	)
	if err != nil {
		zap.L().Fatal("failed to load storage config", zap.Error(err))
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}
