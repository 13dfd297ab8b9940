package main

import (
	"fmt"
	"os"

	"auction-house/internal/auction"
	"auction-house/internal/catalog"
	"auction-house/internal/clock"
	"auction-house/internal/config"
	"auction-house/internal/server"
	"auction-house/internal/session"
	"auction-house/internal/store"
	"auction-house/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)

	kv := newStore(cfg)
	clk := clock.System{}

	sessions := session.NewManager(kv)
	engine := auction.NewEngine(cfg.BidIncrement)
	seedCatalog(engine, clk)

	router := server.SetupRouter(sessions, engine, clk)

	port := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// newStore picks the file-backed store when a path is configured, otherwise
// an in-memory one.
func newStore(cfg *config.Config) store.KVStore {
	if cfg.StorePath != "" {
		return store.NewFileStore(cfg.StorePath)
	}
	return store.NewMemoryStore()
}

// seedCatalog loads the demo lots into the engine
func seedCatalog(engine *auction.Engine, clk clock.Clock) {
	for _, a := range catalog.Seed(clk.Now()) {
		engine.Add(a)
	}
}
