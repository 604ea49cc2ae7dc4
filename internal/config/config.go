package config

// Matching strategy names. The two are mutually exclusive policies for
// pairing product rows with inventory rows; exact is the default.
const (
	MatchExact = "exact"
	MatchFuzzy = "fuzzy"
)

// FuzzyAcceptScore is the token-set-ratio score (0-100) at or above
// which a fuzzy title match is accepted.
const FuzzyAcceptScore = 90

// DefaultEncodings is the ordered fallback list the table loader probes
// when reading an uploaded file. First encoding that decodes and parses
// the whole file wins.
var DefaultEncodings = []string{"utf-8-sig", "latin-1", "windows-1252"}

// File and listener defaults, overridable via environment.
const (
	DefaultSelectionFile = "selection.json"
	DefaultExportDir     = "exports"
	DefaultListenAddr    = ":8080"
)
