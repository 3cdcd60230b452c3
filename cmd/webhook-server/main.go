package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/lyftr/webhook-service/internal/boot"
	"github.com/lyftr/webhook-service/internal/handlers"
	"github.com/lyftr/webhook-service/internal/metrics"
	"github.com/lyftr/webhook-service/internal/store"
)

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	messages, err := store.New(config.DatabasePath())
	if err != nil {
		log.Fatalf("opening message store: %+v", err)
	}
	defer messages.Close()

	collector := metrics.New()

	server := echo.New()
	server.Logger.SetLevel(logLevel(config.LogLevel))
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(middleware.Recover())
	server.Use(handlers.RequestLogger(collector))

	server.POST("/webhook", handlers.Webhook(config.WebhookSecret, messages, collector))
	server.GET("/messages", handlers.Messages(messages))
	server.GET("/stats", handlers.Stats(messages))
	server.GET("/health/live", handlers.HealthLive())
	server.GET("/health/ready", handlers.HealthReady(config.WebhookSecret, messages))
	server.GET("/metrics", echo.WrapHandler(collector.Handler()))

	go func() {
		if err := server.Start(config.ListenAddress()); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}

func logLevel(level string) log.Lvl {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DEBUG
	case "WARN", "WARNING":
		return log.WARN
	case "ERROR":
		return log.ERROR
	default:
		return log.INFO
	}
}
