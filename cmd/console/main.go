package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"transport-console/internal/api"
	"transport-console/internal/auth"
	"transport-console/internal/config"
	"transport-console/internal/idgen"
	"transport-console/internal/services"
	"transport-console/internal/web"
)

func main() {
	cfg := config.Load()

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithTokenSource(auth.NewTokenSource(cfg.JWTSecret, "console")),
	)
	svc := services.New(client)

	app := web.New(web.Deps{
		Transports: svc.Transports,
		Vehicles:   svc.Vehicles,
		Materials:  svc.Materials,
		Shipments:  svc.Shipments,
		Generator:  idgen.Default,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("[ERROR] shutdown: %v", err)
		}
	}()

	log.Printf("Console listening on port %s (API %s)", cfg.ConsolePort, client.BaseURL())
	if err := app.Listen(":" + cfg.ConsolePort); err != nil {
		log.Fatal(err)
	}
}
