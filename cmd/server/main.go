package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	catalogDir := flag.String("catalog", cfg.Launcher.CatalogDir, "Application catalog directory")
	pinned := flag.String("pinned", strings.Join(cfg.Launcher.Pinned, ","), "Comma-separated application ids pinned at startup")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Logging.Development = *dev
	cfg.Launcher.CatalogDir = *catalogDir
	cfg.Launcher.Pinned = nil
	for _, id := range strings.Split(*pinned, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Launcher.Pinned = append(cfg.Launcher.Pinned, id)
		}
	}
	if cfg.Logging.Development && cfg.Logging.Level == "info" {
		cfg.Logging.Level = "debug"
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
