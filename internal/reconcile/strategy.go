package reconcile

import (
	"dropship_manager/internal/config"
	"dropship_manager/internal/sku"
	"dropship_manager/internal/table"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/rs/zerolog/log"
)

// Strategy pairs one product row with at most one inventory row. Both
// implementations are deterministic given the inventory table's
// original order.
type Strategy interface {
	// Name identifies the strategy in logs and configuration.
	Name() string

	// Match returns the inventory row for a product row, if any. key is
	// the product row's already-extracted MatchKey and is never empty.
	Match(product table.Row, key string) (table.Row, bool)
}

// exactStrategy matches on MatchKey equality through a key→row index
// built once over the inventory table, keeping matching linear in the
// number of product rows. When several inventory rows share a key, the
// first one in the inventory table's original order wins.
type exactStrategy struct {
	index map[string]table.Row
}

func newExactStrategy(inventory []table.Row, keyColumn string) *exactStrategy {
	index := make(map[string]table.Row)
	for _, row := range inventory {
		key := sku.ExtractKey(row[keyColumn])
		if key == "" {
			continue
		}
		if _, taken := index[key]; taken {
			// first wins
			continue
		}
		index[key] = row
	}
	log.Debug().Int("keys", len(index)).Msg("Built inventory key index")
	return &exactStrategy{index: index}
}

func (s *exactStrategy) Name() string { return config.MatchExact }

func (s *exactStrategy) Match(_ table.Row, key string) (table.Row, bool) {
	row, ok := s.index[key]
	return row, ok
}

// fuzzyStrategy is the earlier design variant: exact key equality first,
// then a token-order-insensitive similarity score between the product
// title and each inventory SKU string. The best-scoring candidate is
// accepted when its score reaches the acceptance threshold.
type fuzzyStrategy struct {
	exact      *exactStrategy
	candidates []table.Row
	keyColumn  string
}

func newFuzzyStrategy(inventory []table.Row, keyColumn string) *fuzzyStrategy {
	// Only keyed inventory rows participate; unkeyable rows are excluded
	// from matching under either strategy.
	var candidates []table.Row
	for _, row := range inventory {
		if sku.ExtractKey(row[keyColumn]) != "" {
			candidates = append(candidates, row)
		}
	}
	return &fuzzyStrategy{
		exact:      newExactStrategy(inventory, keyColumn),
		candidates: candidates,
		keyColumn:  keyColumn,
	}
}

func (s *fuzzyStrategy) Name() string { return config.MatchFuzzy }

func (s *fuzzyStrategy) Match(product table.Row, key string) (table.Row, bool) {
	if row, ok := s.exact.Match(product, key); ok {
		return row, ok
	}

	title := product["Title"]
	if title == "" {
		return nil, false
	}

	bestScore := -1
	var best table.Row
	for _, candidate := range s.candidates {
		score := fuzzy.TokenSetRatio(title, candidate[s.keyColumn])
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore >= config.FuzzyAcceptScore {
		log.Debug().
			Str("title", title).
			Str("inventory_sku", best[s.keyColumn]).
			Int("score", bestScore).
			Msg("Accepted fuzzy title match")
		return best, true
	}
	return nil, false
}
