// Package server exposes the reconciled catalog to the browse/select UI
// over HTTP. It is the only layer that mutates the selection store.
package server

import (
	"net/http"
	"strconv"
	"time"

	"dropship_manager/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler carries the session and export target for the HTTP surface.
type Handler struct {
	session   *catalog.Session
	exportDir string
}

// NewHandler creates the HTTP handler set over one operator session.
func NewHandler(session *catalog.Session, exportDir string) *Handler {
	return &Handler{session: session, exportDir: exportDir}
}

type availabilityDTO struct {
	Total   int  `json:"total"`
	HasData bool `json:"hasData"`
}

type groupDTO struct {
	Handle       string          `json:"handle"`
	Title        string          `json:"title"`
	Image        string          `json:"image,omitempty"`
	VariantCount int             `json:"variantCount"`
	Availability availabilityDTO `json:"availability"`
	Selected     bool            `json:"selected"`
}

// GetGroups returns group summaries, filtered by the optional q, min
// and max query parameters.
func (h *Handler) GetGroups(c *gin.Context) {
	query := c.Query("q")
	minAvail, err := intParam(c, "min")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min must be an integer"})
		return
	}
	maxAvail, err := intParam(c, "max")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max must be an integer"})
		return
	}

	groups := h.session.Groups(query, minAvail, maxAvail)
	out := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupDTO{
			Handle:       g.Handle,
			Title:        g.Title(),
			Image:        g.Image(),
			VariantCount: len(g.Rows),
			Availability: availabilityDTO{Total: g.Availability, HasData: g.HasAvailability},
			Selected:     h.session.Selection().Contains(g.Handle),
		})
	}
	c.JSON(http.StatusOK, gin.H{"groups": out, "count": len(out)})
}

// GetSelection returns the currently selected handles.
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"handles": h.session.Selection().Handles()})
}

// SelectHandle adds a handle to the selection.
func (h *Handler) SelectHandle(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.session.Selection().Add(handle); err != nil {
		log.Error().Err(err).Str("handle", handle).Msg("Failed to persist selection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"handle": handle, "selected": true})
}

// DeselectHandle removes a handle from the selection.
func (h *Handler) DeselectHandle(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.session.Selection().Remove(handle); err != nil {
		log.Error().Err(err).Str("handle", handle).Msg("Failed to persist selection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"handle": handle, "selected": false})
}

// ClearSelection empties the selection.
func (h *Handler) ClearSelection(c *gin.Context) {
	if err := h.session.Selection().Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to persist selection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"handles": []string{}})
}

// Export writes the selected subset as two CSV files and returns their
// paths. An empty selection yields header-only files.
func (h *Handler) Export(c *gin.Context) {
	files, err := h.session.Export(h.exportDir, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"productFile":   files.ProductPath,
		"inventoryFile": files.InventoryPath,
	})
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
