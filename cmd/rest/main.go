package main

import (
	"context"
	"log"

	"equibot-be/internal/bootstrap"
	"equibot-be/internal/config"
	"equibot-be/internal/server"
	"equibot-be/internal/tracer"
)

func main() {
	// 1. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.SysLogger.Sync()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
