package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"bluenoise/internal/api"
	"bluenoise/internal/config"
	"bluenoise/internal/noise"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	log.Println("🔵 ================================")
	log.Println("🔵  BLUE NOISE - GENERATION SERVER")
	log.Println("🔵 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	genCfg := appConfig.Generator
	serverCfg := appConfig.Server

	log.Printf("🎛️ Defaults: %dx%d grid, %d points, k=%d, seed=%d, %s",
		genCfg.Width, genCfg.Height, genCfg.NumPoints,
		genCfg.CandidatesPerPoint, genCfg.Seed, genCfg.Algorithm)
	log.Printf("🛡️ Limits: dimension <= %d, points <= %d",
		appConfig.Limits.MaxDimension, appConfig.Limits.MaxPoints)

	// Start debug server (pprof + prometheus)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	service := api.NewPatternService()
	server := api.NewServer(service, appConfig.Limits, appConfig.Render)

	// Warm the pattern state so GET /api/pattern has something to serve
	// before the first client request.
	service.Submit(noise.Request{
		Width:              genCfg.Width,
		Height:             genCfg.Height,
		NumPoints:          genCfg.NumPoints,
		CandidatesPerPoint: genCfg.CandidatesPerPoint,
		Seed:               genCfg.Seed,
		Algorithm:          noise.Algorithm(genCfg.Algorithm),
	})

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("🛑 Received %v, shutting down", sig)
		server.Stop()
		os.Exit(0)
	}()

	addr := ":" + strconv.Itoa(serverCfg.Port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
