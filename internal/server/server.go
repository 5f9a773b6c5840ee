// Package server wires the application together and runs the HTTP listener.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/rasoi/app/controllers"
	"github.com/shashiranjanraj/rasoi/app/repositories"
	"github.com/shashiranjanraj/rasoi/app/routes"
	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/config"
	"github.com/shashiranjanraj/rasoi/pkg/cache"
	"github.com/shashiranjanraj/rasoi/pkg/database"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
	"github.com/shashiranjanraj/rasoi/pkg/metrics"
	"github.com/shashiranjanraj/rasoi/pkg/middleware"
	"github.com/shashiranjanraj/rasoi/pkg/reqid"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/router"
	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

const (
	rateLimitMax    = 100
	rateLimitWindow = time.Minute
	shutdownTimeout = 10 * time.Second
)

// New builds the fully wired router over the given database.
func New(db *mongo.Database) *router.Router {
	accounts := repositories.NewAccountRepository(db)
	cateringRepo := repositories.NewCateringServiceRepository(db)
	categoryRepo := repositories.NewMenuCategoryRepository(db)
	itemRepo := repositories.NewMenuItemRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	authSvc := services.NewAuthService(accounts)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigin())),
		middleware.RateLimit(rateLimitMax, rateLimitWindow),
	)

	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Catering: controllers.NewCateringController(services.NewCateringService(cateringRepo, categoryRepo, itemRepo)),
		Menu:     controllers.NewMenuController(services.NewMenuService(cateringRepo, categoryRepo, itemRepo)),
		Booking:  controllers.NewBookingController(services.NewBookingService(bookingRepo, cateringRepo, itemRepo)),
		Feedback: controllers.NewFeedbackController(services.NewFeedbackService(feedbackRepo, cateringRepo)),
		Contact:  controllers.NewContactController(services.NewContactService(contactRepo)),
	}, middleware.Auth(authSvc.ResolvePrincipal))

	r.Get("/health", "health", healthHandler)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Static("/uploads", config.UploadDir())

	return r
}

// Run boots the application and blocks until the listener stops. It returns
// an error (and the process exits non-zero) when the initial store
// connection fails.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		logger.Error("mongodb connection failed", "error", err)
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	if config.Get("LOG_TO_MONGO", "false") == "true" {
		sink := logger.NewMongoHandler(database.DB(), config.Get("LOG_COLLECTION", "logs"))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), sink))
		defer sink.Close()
	}

	if ok, err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, rate limiting falls back to in-process buckets", "error", err)
	} else if ok {
		logger.Info("redis connected", "addr", config.RedisAddr())
		defer cache.Close()
	}

	storage.Connect()
	if err := os.MkdirAll(config.UploadDir(), 0o755); err != nil {
		return err
	}

	r := New(database.DB())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	response.Message(w, "ok")
}
