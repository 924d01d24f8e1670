package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/export"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/response"
	"github.com/ssce/examcell-backend/internal/service"
	"github.com/ssce/examcell-backend/internal/validator"
)

type ExportHandler struct {
	renderer            *export.Renderer
	registrationService *service.RegistrationService
	log                 zerolog.Logger
}

func NewExportHandler(renderer *export.Renderer, registrationService *service.RegistrationService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		renderer:            renderer,
		registrationService: registrationService,
		log:                 log.With().Str("component", "export_handler").Logger(),
	}
}

// RegistrationForms godoc
// POST /api/exams/export
//
// Streams a PDF with one registration form per selected student. The
// client may send its own totalAmount; when it doesn't, the amount is
// priced server-side from the selection counts.
func (h *ExportHandler) RegistrationForms(c *gin.Context) {
	var req model.ExportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Message(c, http.StatusBadRequest, response.MsgNoStudentsSelected)
		return
	}
	if len(req.Students) == 0 {
		response.Message(c, http.StatusBadRequest, response.MsgNoStudentsSelected)
		return
	}

	if req.TotalAmount == 0 {
		req.TotalAmount = h.registrationService.Quote(len(req.Students), len(req.Papers))
	}

	pdf, err := h.renderer.RegistrationForms(req)
	if err != nil {
		h.log.Error().Err(err).Msg("PDF render failed")
		response.Internal(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="exam-registration.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
