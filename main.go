package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "hallbooking/internal/config"
	api "hallbooking/internal/http"
	"hallbooking/internal/utils"
)

func main() {
	cfg, err := intconfig.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	intconfig.ConnectDB(cfg.Database)
	defer intconfig.CloseDB()

	cache := intconfig.ConnectRedis(cfg.Redis)
	if cache != nil {
		defer cache.Close()
	}

	r := api.NewRouter(cfg, cache)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server shutdown failed: %v", err)
	}

	logrus.Info("server stopped cleanly")
}
