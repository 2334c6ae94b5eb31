package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-wellness/internal/config"
	"github.com/AnshRaj112/serenify-wellness/internal/database"
	"github.com/AnshRaj112/serenify-wellness/internal/handlers"
	"github.com/AnshRaj112/serenify-wellness/internal/logger"
	"github.com/AnshRaj112/serenify-wellness/internal/middleware"
	"github.com/AnshRaj112/serenify-wellness/internal/routes"
	"github.com/AnshRaj112/serenify-wellness/internal/services"
)

const (
	sessionSweepInterval = 10 * time.Minute
	shutdownTimeout      = 15 * time.Second
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	backend, err := database.Open(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			zl.Warn("close storage", zap.Error(err))
		}
	}()

	sessions := services.NewSessionManager(backend.Store, cfg.JWTSecret, cfg.SessionTTL, services.WorkspaceConfig{
		AuthDelay: cfg.AuthDelay,
		Logger:    zl,
	})
	sessions.StartJanitor(ctx, sessionSweepInterval)

	// Cloudinary backs the data export; without it /api/export answers 503
	var exporter *services.ExportService
	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			zl.Warn("cloudinary unavailable, export disabled", zap.Error(err))
		} else {
			exporter = services.NewExportService(cld, cfg.ExportFolder, zl)
			zl.Info("cloudinary export enabled", zap.String("folder", cfg.ExportFolder))
		}
	} else {
		zl.Warn("cloudinary credentials not found, export disabled")
	}

	h := handlers.New(handlers.Options{
		Sessions:        sessions,
		Exporter:        exporter,
		Picker:          services.NewAffirmationPicker(randomSeed()),
		Logger:          zl,
		ChatTypingDelay: cfg.ChatTypingDelay,
		AllowedOrigins:  cfg.AllowedOrigins,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.ZapRequestLogger(zl))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ChatRateLimit())

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Otherwise: Redis counter limit when Redis is the storage backend
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		zl.Info("production security enabled", zap.String("host", cfg.AllowedHost))
	} else if backend.Redis != nil {
		r.Use(middleware.NewRedisRateLimiter(backend.Redis, zl).Middleware)
	}

	routes.SetupRoutes(r, h, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("serenify running",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Environment),
			zap.String("storage", cfg.StorageDriver),
			zap.Strings("origins", cfg.AllowedOrigins))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
