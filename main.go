package main

import (
	"dropship_manager/internal/app"
	"dropship_manager/internal/catalog"
	"dropship_manager/internal/config"
	"dropship_manager/internal/reconcile"
	"dropship_manager/internal/selection"
	"dropship_manager/internal/server"
	"dropship_manager/internal/sources"
	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	cfg := app.LoadConfig()
	session := buildSession(cfg)

	router := server.NewRouter(session, cfg.ExportDir)
	log.Info().Str("addr", cfg.ListenAddr).Msg("Serving product browser API")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// buildSession runs one full reconciliation pass: load both sources,
// join them, and open the durable selection over the result.
func buildSession(cfg app.Config) *catalog.Session {
	products, err := sources.LoadProducts(cfg.ProductFiles, config.DefaultEncodings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load product files")
	}

	inventory, err := table.Load(cfg.InventoryFile, config.DefaultEncodings)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.InventoryFile).Msg("Failed to load inventory file")
	}
	log.Info().
		Str("file", cfg.InventoryFile).
		Int("rows", len(inventory.Rows)).
		Msg("Loaded inventory file")

	result, err := reconcile.Reconcile(products, inventory, reconcile.Options{
		Strategy:           cfg.MatchStrategy,
		RequirePositiveQty: cfg.RequirePositiveQty,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	store, err := selection.Open(cfg.SelectionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load selection state")
	}

	return catalog.NewSession(result.Table, result.ProductColumns, result.InventoryColumns, store)
}
