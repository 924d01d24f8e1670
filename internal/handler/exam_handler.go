package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/response"
	"github.com/ssce/examcell-backend/internal/service"
	"github.com/ssce/examcell-backend/internal/validator"
)

type ExamHandler struct {
	examService *service.ExamService
}

func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListScheduled godoc
// GET /api/exams?date&session&deptCode&semester&regulation
func (h *ExamHandler) ListScheduled(c *gin.Context) {
	var q model.ListExamsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.Message(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}

	exams, err := h.examService.ListScheduled(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoExams):
			response.Message(c, http.StatusOK, response.MsgNoExams)
		case errors.Is(err, service.ErrInvalidDate):
			response.Message(c, http.StatusBadRequest, response.MsgInvalidDate)
		default:
			response.Internal(c)
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"exams": exams})
}
