package app

import (
	"os"
	"strings"

	"dropship_manager/internal/config"

	"github.com/rs/zerolog/log"
)

// LoadConfig resolves the tool configuration from the environment.
// PRODUCT_FILES and INVENTORY_FILE are required; everything else has a
// default.
func LoadConfig() Config {
	cfg := Config{
		InventoryFile:      GetRequiredEnv("INVENTORY_FILE"),
		SelectionFile:      GetEnvWithDefault("SELECTION_FILE", config.DefaultSelectionFile),
		ExportDir:          GetEnvWithDefault("EXPORT_DIR", config.DefaultExportDir),
		MatchStrategy:      GetEnvWithDefault("MATCH_STRATEGY", config.MatchExact),
		RequirePositiveQty: GetEnvWithDefault("REQUIRE_POSITIVE_QTY", "false") == "true",
		ListenAddr:         GetEnvWithDefault("LISTEN_ADDR", config.DefaultListenAddr),
	}

	for _, raw := range strings.Split(GetRequiredEnv("PRODUCT_FILES"), ",") {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		cfg.ProductFiles = append(cfg.ProductFiles, path)
	}
	if len(cfg.ProductFiles) == 0 {
		log.Fatal().Msg("PRODUCT_FILES must name at least one file")
	}

	if cfg.MatchStrategy != config.MatchExact && cfg.MatchStrategy != config.MatchFuzzy {
		log.Fatal().Str("strategy", cfg.MatchStrategy).Msg("MATCH_STRATEGY must be exact or fuzzy")
	}

	log.Debug().
		Strs("product_files", cfg.ProductFiles).
		Str("inventory_file", cfg.InventoryFile).
		Str("strategy", cfg.MatchStrategy).
		Bool("require_positive_qty", cfg.RequirePositiveQty).
		Msg("Resolved configuration")
	return cfg
}

// GetRequiredEnv fetches a required environment variable or exits if not set.
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Msgf("%s environment variable is required", key)
	}
	return value
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
