package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aesviz/server/internal/api/gateway"
	"aesviz/server/internal/config"
	"aesviz/server/internal/pkg/helpers"
	"aesviz/server/internal/services/visualizer"
)

func main() {
	// Load configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded:")
	fmt.Println(cfg)

	visualizerService := visualizer.NewService(helpers.NewLogger("Visualizer").WithDebug(cfg.Log.Debug))
	gatewayServer := gateway.New(cfg, visualizerService, helpers.NewLogger("Gateway").WithDebug(cfg.Log.Debug))

	// Stop cleanly on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := gatewayServer.Shutdown(ctx); err != nil {
			log.Printf("Gateway shutdown error: %v", err)
		}
	}()

	// Start gateway server
	if err := gatewayServer.Start(); err != nil {
		log.Fatalf("Gateway server failed: %v", err)
	}
	fmt.Println("Gateway server stopped")
}
