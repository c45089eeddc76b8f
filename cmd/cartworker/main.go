package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/provenly/commerce/internal/cart"
	"github.com/provenly/commerce/internal/config"
	kafkax "github.com/provenly/commerce/internal/kafka"
	"github.com/provenly/commerce/internal/orders"
	"github.com/provenly/commerce/internal/postgres"
	"github.com/provenly/commerce/internal/redisx"
	"github.com/provenly/commerce/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.ServiceName + "-cartworker")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &cart.Service{
		DB:          db,
		Redis:       rdb,
		Log:         log,
		ServiceName: cfg.ServiceName + "-cartworker",
	}

	group := getenv("CARTWORKER_GROUP", "cartworker")
	workers := atoiOr(os.Getenv("CARTWORKER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderCreated, workers, log)

	go func() {
		log.Info("consumer started", "group", group, "topic", orders.TopicOrderCreated, "workers", workers)
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
