package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rosa/config"
	"rosa/cron"
	"rosa/database"
	bookingsRepo "rosa/database/repository/bookings"
	catalogRepo "rosa/database/repository/catalog"
	"rosa/handlers"
	"rosa/middleware"
	"rosa/routes"
	"rosa/services/booking"
	"rosa/services/catalog"
	"rosa/services/comanda"
	"rosa/services/notification"
	"rosa/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// stores bundles the repositories of the selected driver.
type stores struct {
	bookings bookingsRepo.BookingRepository
	catalog  catalogRepo.CatalogRepository
	close    func(context.Context)
}

func openStores(ctx context.Context, app *firebase.App, logger *zap.Logger) (*stores, error) {
	switch config.AppConfig.StoreDriver {
	case database.DriverMongo:
		client, db, err := database.InitMongo(ctx)
		if err != nil {
			return nil, err
		}
		repo := bookingsRepo.NewMongoBookingRepo(db, logger)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using MongoDB store", zap.String("database", config.AppConfig.DatabaseName))
		return &stores{
			bookings: repo,
			catalog:  catalogRepo.NewMongoCatalogRepo(db, logger),
			close: func(ctx context.Context) {
				_ = client.Disconnect(ctx)
			},
		}, nil

	default:
		client, err := database.InitFirestore(ctx, app)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Firestore store", zap.String("projectId", config.AppConfig.FirebaseProjectID))
		return &stores{
			bookings: bookingsRepo.NewFirestoreBookingRepo(client, logger),
			catalog:  catalogRepo.NewFirestoreCatalogRepo(client, logger),
			close: func(context.Context) {
				_ = client.Close()
			},
		}, nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	app, err := utils.FirebaseInit(ctx)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase auth", zap.Error(err))
	}

	st, err := openStores(ctx, app, logger)
	if err != nil {
		logger.Fatal("main: failed to open store", zap.String("driver", config.AppConfig.StoreDriver), zap.Error(err))
	}

	// redis is optional: without it the catalog is read straight from the store
	var redisClient *redis.Client
	if config.AppConfig.CacheEnabled {
		redisClient, err = utils.NewCacheClient()
		if err != nil {
			logger.Warn("main: redis unavailable, catalog cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:   st.catalog,
		TTL:    config.CatalogCacheTTL(),
		Logger: logger,
	}
	if redisClient != nil {
		catalogService.Cache = &catalog.RedisCache{Client: redisClient}
	}

	var notifier notification.NotificationService = notification.NopNotificationService{}
	if topic := config.AppConfig.NotifyTopic; topic != "" {
		fcm, err := app.Messaging(ctx)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase messaging", zap.Error(err))
		}
		notifier, err = notification.NewDefaultNotificationService(fcm, topic, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize notifications", zap.Error(err))
		}
	}

	bookingService := booking.NewBookingService(st.bookings, catalogService, notifier, logger, config.Location())
	comandaService := comanda.NewComandaService(config.AppConfig.ComandaSecret, config.ComandaTTL(), catalogService, logger)
	if config.AppConfig.ComandaSecret == "" {
		if config.AppConfig.RequireComanda {
			logger.Fatal("main: REQUIRE_COMANDA is set but COMANDA_SECRET is empty")
		}
		logger.Warn("main: COMANDA_SECRET is empty, comandas cannot be issued or verified")
	}

	var worker *cron.IntegrityWorker
	if config.AppConfig.IntegrityEnabled {
		worker, err = cron.InitIntegrityWorker(bookingService, logger)
		if err != nil {
			logger.Error("main: integrity worker disabled", zap.Error(err))
		}
	}

	utils.StartHealthMonitor(ctx, st.bookings, redisClient)

	handlerBundle := &handlers.HandlerBundle{
		Booking:   handlers.NewBookingHandler(bookingService, logger),
		Admin:     handlers.NewAdminHandler(bookingService, catalogService, logger),
		Catalog:   handlers.NewCatalogHandler(catalogService, logger),
		Comanda:   handlers.NewComandaHandler(comandaService, logger),
		GuestAuth: middleware.ComandaMiddleware(comandaService, config.AppConfig.RequireComanda),
		AdminAuth: middleware.AdminAuthMiddleware(authClient, config.AppConfig.AdminClaim),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle, logger, config.AppConfig.MaxRequestsPerMin)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// open SSE streams end when their request context is cancelled
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	stop()
	if worker != nil {
		worker.Shutdown()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	st.close(shutdownCtx)

	logger.Info("main: server stopped gracefully")
}
