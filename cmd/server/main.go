package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transport-console/internal/config"
	"transport-console/internal/database"
	"transport-console/internal/events"
	"transport-console/internal/idgen"
	"transport-console/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	var pub events.Publisher = events.Noop{}
	if cfg.KafkaBroker != "" {
		pub = events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		log.Printf("Publishing shipment events to %s (topic %s)", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	app := server.New(cfg, pub, idgen.Default)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("[ERROR] shutdown: %v", err)
		}
	}()

	log.Println("API listening on port:", cfg.HTTPPort)
	listenErr := app.Listen(":" + cfg.HTTPPort)
	if listenErr != nil {
		log.Printf("[ERROR] listen: %v", listenErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := events.Wait(ctx); err != nil {
		log.Printf("[WARN] pending shipment events not published: %v", err)
	}
	cancel()
	if err := pub.Close(); err != nil {
		log.Printf("[ERROR] close event publisher: %v", err)
	}
	if listenErr != nil {
		os.Exit(1)
	}
}
