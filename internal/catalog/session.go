// Package catalog owns the session-scoped state of one operator
// session: the reconciled table, its product groups, and the filtered
// views the browse UI consumes.
package catalog

import (
	"strings"
	"time"

	"dropship_manager/internal/availability"
	"dropship_manager/internal/export"
	"dropship_manager/internal/selection"
	"dropship_manager/internal/sku"
	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

// Group is the set of reconciled variant rows sharing one Handle.
type Group struct {
	Handle string
	Rows   []table.Row

	// Representative is the row the UI shows for the group: the first
	// row with a non-empty SKU cell, else the group's first row.
	Representative table.Row

	Availability    int
	HasAvailability bool
}

// Title returns the representative row's title.
func (g *Group) Title() string { return g.Representative["Title"] }

// Image returns the representative row's image reference, if any.
func (g *Group) Image() string { return g.Representative["Image Src"] }

// Session holds one operator session's reconciled table and selection.
// Single-threaded by design: one reconciliation pass per file-change
// event, no background mutation.
type Session struct {
	reconciled       *table.Table
	productColumns   map[string]struct{}
	inventoryColumns map[string]struct{}
	store            *selection.Store
	groups           []*Group
}

// NewSession groups the reconciled table by Handle, preserving the
// first-seen order of handles.
func NewSession(reconciled *table.Table, productCols, inventoryCols map[string]struct{}, store *selection.Store) *Session {
	s := &Session{
		reconciled:       reconciled,
		productColumns:   productCols,
		inventoryColumns: inventoryCols,
		store:            store,
	}
	s.buildGroups()
	return s
}

func (s *Session) buildGroups() {
	keyCol := sku.KeyColumn(s.reconciled.Header)
	byHandle := make(map[string]*Group)
	s.groups = nil

	for _, row := range s.reconciled.Rows {
		handle := row["Handle"]
		g, ok := byHandle[handle]
		if !ok {
			g = &Group{Handle: handle}
			byHandle[handle] = g
			s.groups = append(s.groups, g)
		}
		g.Rows = append(g.Rows, row)
	}

	for _, g := range s.groups {
		g.Representative = representative(g.Rows, keyCol)
		g.Availability, g.HasAvailability = availability.Aggregate(g.Rows, s.reconciled.Header)
	}

	log.Info().
		Int("groups", len(s.groups)).
		Int("rows", len(s.reconciled.Rows)).
		Msg("Built product groups")
}

func representative(rows []table.Row, keyCol string) table.Row {
	if keyCol != "" {
		for _, row := range rows {
			if row[keyCol] != "" {
				return row
			}
		}
	}
	return rows[0]
}

// Groups returns groups matching the query and availability range. The
// query is a case-insensitive substring over title, handle, and every
// SKU in the group. minAvail/maxAvail are inclusive; nil means
// unbounded. Groups with no availability data pass only when no range
// bound is set.
func (s *Session) Groups(query string, minAvail, maxAvail *int) []*Group {
	keyCol := sku.KeyColumn(s.reconciled.Header)
	query = strings.ToLower(strings.TrimSpace(query))

	var out []*Group
	for _, g := range s.groups {
		if query != "" && !matchesQuery(g, keyCol, query) {
			continue
		}
		if minAvail != nil || maxAvail != nil {
			if !g.HasAvailability {
				continue
			}
			if minAvail != nil && g.Availability < *minAvail {
				continue
			}
			if maxAvail != nil && g.Availability > *maxAvail {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}

func matchesQuery(g *Group, keyCol, query string) bool {
	if strings.Contains(strings.ToLower(g.Title()), query) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Handle), query) {
		return true
	}
	if keyCol == "" {
		return false
	}
	for _, row := range g.Rows {
		if strings.Contains(strings.ToLower(row[keyCol]), query) {
			return true
		}
	}
	return false
}

// Selection returns the session's selection store. All mutation goes
// through the UI layer; the reconciler never touches it.
func (s *Session) Selection() *selection.Store {
	return s.store
}

// Export writes the currently selected groups as two CSVs under dir.
func (s *Session) Export(dir string, now time.Time) (export.Files, error) {
	return export.Export(dir, s.reconciled, s.store, s.productColumns, s.inventoryColumns, now)
}

// Reset rebuilds the group view from the reconciled table, discarding
// any cached state. Used when a fresh pass replaces the session's data.
func (s *Session) Reset() {
	s.buildGroups()
}
