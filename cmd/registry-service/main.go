package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"quiz-registry/internal/config"
	"quiz-registry/internal/httpapi"
	"quiz-registry/internal/registry"
)

func main() {
	_ = godotenv.Load()

	defaultConfigPath := os.Getenv("CONFIG")
	if defaultConfigPath == "" {
		defaultConfigPath = "registry.yaml"
	}

	configPath := flag.String("config", defaultConfigPath, "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	store, err := registry.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	service := registry.NewService(store, store)
	if err := service.Init(context.Background(), cfg.InitialEducators); err != nil {
		log.Fatalf("init registry: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(service),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("registry-service listening on %s (db=%s)", cfg.Addr, cfg.DBPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
