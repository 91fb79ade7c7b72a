package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"autoparts-backend/internal/config"
	"autoparts-backend/internal/database"
	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/gateway/sqlgateway"
	"autoparts-backend/internal/logger"
	"autoparts-backend/internal/metrics"
	"autoparts-backend/internal/receipt"
	"autoparts-backend/internal/saga"
	"autoparts-backend/internal/server"
	"autoparts-backend/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, warns := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	config.Log(zlog, warns)
	if problems := cfg.Validate(); len(problems) > 0 {
		zlog.Fatal("invalid configuration", zap.String("problems", strings.Join(problems, "; ")))
	}

	policy, err := saga.ParsePolicy(cfg.CompoundPolicy)
	if err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	m := metrics.New(nil)
	gw := gateway.Instrument(sqlgateway.New(db, sqlgateway.Options{
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		AutoConfirm:  cfg.AutoConfirmSignUp,
		QueryTimeout: cfg.QueryTimeout,
	}, zlog), m)

	st := store.New(gw,
		store.WithLogger(zlog),
		store.WithMetrics(m),
		store.WithPolicy(policy),
		store.WithStaticAdmin(cfg.StaticAdminEnabled),
		store.WithSessionTTL(cfg.SessionTTL),
		store.WithRestoreStockOnDelete(cfg.RestoreStockOnDelete),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.Init(ctx); err != nil {
		zlog.Warn("initial load incomplete", zap.Error(err))
	}

	app := server.New(st, server.Options{
		CORSOrigins: cfg.CORSOrigins,
		Shop: receipt.Shop{
			Name:    cfg.ShopName,
			Address: cfg.ShopAddress,
			Phone:   cfg.ShopPhone,
		},
		Log: zlog,
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		zlog.Fatal("listen", zap.Error(err))
	}
}
