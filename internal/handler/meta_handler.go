package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/response"
)

// MetaHandler serves the catalog of departments, regulations and
// semesters the UI builds its dropdowns from.
type MetaHandler struct {
	cfg *config.Config
}

func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

// Catalog godoc
// GET /api/meta/catalog
func (h *MetaHandler) Catalog(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{
		"departments": h.cfg.Departments,
		"regulations": h.cfg.Regulations,
		"semesters":   h.cfg.Semesters,
		"paperFee":    h.cfg.PaperFee,
	})
}
