package server

import (
	"dropship_manager/internal/catalog"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine for one operator session.
func NewRouter(session *catalog.Session, exportDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	h := NewHandler(session, exportDir)
	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes wires the browse/select/export endpoints.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/groups", h.GetGroups)

		api.GET("/selection", h.GetSelection)
		api.PUT("/selection/:handle", h.SelectHandle)
		api.DELETE("/selection/:handle", h.DeselectHandle)
		api.DELETE("/selection", h.ClearSelection)

		api.POST("/export", h.Export)
	}
}
