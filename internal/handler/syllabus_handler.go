package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/response"
	"github.com/ssce/examcell-backend/internal/service"
)

type SyllabusHandler struct {
	syllabusService *service.SyllabusService
}

func NewSyllabusHandler(syllabusService *service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{syllabusService: syllabusService}
}

// ListPapers godoc
// GET /api/syllabus/:regulation/:deptCode/:semester
func (h *SyllabusHandler) ListPapers(c *gin.Context) {
	regulation := c.Param("regulation")
	deptCode := c.Param("deptCode")
	semester := c.Param("semester")

	papers, err := h.syllabusService.ListPapers(c.Request.Context(), regulation, deptCode, semester)
	if err != nil {
		if errors.Is(err, service.ErrNoPapers) {
			response.Message(c, http.StatusOK, response.MsgNoPapers)
			return
		}
		response.Internal(c)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"papers": papers})
}
