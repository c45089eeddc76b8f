package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/provenly/commerce/internal/batches"
	"github.com/provenly/commerce/internal/config"
	"github.com/provenly/commerce/internal/httpx"
	"github.com/provenly/commerce/internal/inventory"
	kafkax "github.com/provenly/commerce/internal/kafka"
	"github.com/provenly/commerce/internal/orders"
	"github.com/provenly/commerce/internal/postgres"
	"github.com/provenly/commerce/internal/pricing"
	"github.com/provenly/commerce/internal/redisx"
	"github.com/provenly/commerce/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.ServiceName)
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

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, log)
	prod.Start(ctx)

	store := orders.NewPGStore(db)
	svc := orders.NewService(store, pricing.New(cfg.TaxRate), log)

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Orders:   svc,
		Catalog:  store,
		Producer: prod,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)
	(&httpx.ProvenanceHandler{
		Verifier: &inventory.Verifier{DB: db},
		Redis:    rdb,
	}).Register(router)
	(&httpx.BatchesHandler{
		Batches: &batches.Service{DB: db, Log: log},
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush pending events
	cancel()
	prod.WaitClosed()
}
