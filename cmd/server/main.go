package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frutbras-service/config"
	"frutbras-service/internal/api"
	"frutbras-service/internal/broker"
	"frutbras-service/internal/cache"
	"frutbras-service/internal/cart"
	"frutbras-service/internal/notify"
	"frutbras-service/internal/realtime"
	"frutbras-service/internal/redisclient"
	"frutbras-service/internal/service"
	"frutbras-service/internal/store"
	"frutbras-service/internal/util"
	"frutbras-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting frutbras service")

	tp, err := util.InitTracer("frutbras-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicChanges)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	changePublisher := broker.NewChangePublisher(producer)

	queryCache := cache.New()
	center := notify.NewCenter(time.Duration(cfg.Site.NotificationTTLSecs) * time.Second)

	listener := realtime.NewListener(queryCache, center, db,
		time.Duration(cfg.Site.ProbeIntervalSecs)*time.Second)
	listener.Start()
	defer listener.Stop()

	sessions := cart.NewSessions(redisClient)

	cartService := service.NewCartService(sessions, db)
	catalogService := service.NewCatalogService(db, queryCache, changePublisher)
	pedidoService := service.NewPedidoService(db, redisClient, changePublisher, sessions)
	cepClient := service.NewCEPClient(cfg.Site.ViaCEPBaseURL)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	changeConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicChanges, cfg.Kafka.InstanceConsumerGroup())
	changeFeedWorker := worker.NewChangeFeedWorker(changeConsumer, listener)
	go func() {
		if err := changeFeedWorker.Start(workerCtx); err != nil {
			log.Printf("Change feed worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService, pedidoService, cartService, cepClient, center, listener)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	changeFeedWorker.Stop()

	log.Println("Server exited")
}
