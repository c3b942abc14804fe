package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"signa-dashboard/internal/config"
	"signa-dashboard/internal/handlers"
	"signa-dashboard/internal/middleware"
	"signa-dashboard/internal/routes"
	"signa-dashboard/internal/session"
	"signa-dashboard/internal/signa"
	"signa-dashboard/pkg/logger"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// 2. Init Logger
	lg, err := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  logger.Format(cfg.LogFormat),
		Service: "signa-dashboard",
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// 3. Siapkan tempat simpan token
	store, err := openStore(cfg)
	if err != nil {
		lg.Fatal("Failed to open session store", zap.String("store", cfg.SessionStore), zap.Error(err))
	}

	// 4. Client Signa API + Session Manager
	client := signa.New(cfg.Signa,
		signa.WithTokenSource(session.StoreTokens(store)),
		signa.WithLogger(lg.Named("signa")))
	manager := session.NewManager(client, store, lg.Named("session"))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Signa.Timeout+time.Second)
	restored := manager.Restore(ctx)
	cancel()
	lg.Info("Session restored", zap.Bool("authenticated", restored), zap.String("state", manager.State().String()))

	// 5. Init Router
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(lg.Named("access")))

	// 6. Setup Routes
	if os.Getenv("GATEWAY_SECRET") == "" {
		lg.Warn("GATEWAY_SECRET belum diisi, token lokal tidak berlaku setelah restart")
	}
	h := handlers.New(client, manager, lg.Named("http"), handlers.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		TokenSecret:    cfg.TokenSecret,
		TokenTTL:       cfg.TokenTTL,
		SecureCookie:   cfg.SecureCookie,
	})
	routes.SetupRoutes(r, h, routes.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	// 7. Run Server
	lg.Info("Server berjalan",
		zap.String("addr", cfg.Addr()),
		zap.String("signa_base_url", cfg.Signa.BaseURL),
		zap.String("response_shape", string(cfg.Signa.Shape)))
	if err := r.Run(cfg.Addr()); err != nil {
		lg.Fatal("Server stopped", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (session.Store, error) {
	switch cfg.SessionStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), nil
	case config.StoreRedis:
		rdb := config.ConnectRedis(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return session.NewRedisStore(rdb, cfg.RedisKey), nil
	case config.StoreMySQL:
		db, err := config.ConnectDB(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		store := session.NewGormStore(db, "")
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate session_tokens: %w", err)
		}
		return store, nil
	}

	return session.NewFileStore(cfg.SessionFile, cfg.SessionKey), nil
}
