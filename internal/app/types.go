package app

// Config is the tool's environment-derived configuration, resolved once
// at startup.
type Config struct {
	// ProductFiles are the catalog CSVs, reconciled as one table.
	ProductFiles []string
	// InventoryFile is the single inventory count feed.
	InventoryFile string

	// SelectionFile is the durable selection-set JSON file.
	SelectionFile string
	// ExportDir receives the generated CSV pairs.
	ExportDir string

	// MatchStrategy is config.MatchExact or config.MatchFuzzy.
	MatchStrategy string
	// RequirePositiveQty enables the strict inventory pre-filter.
	RequirePositiveQty bool

	// ListenAddr is the address the browse/select API binds to.
	ListenAddr string
}
