package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/model"
	"github.com/ssce/examcell-backend/internal/repository"
	"github.com/ssce/examcell-backend/internal/response"
	"github.com/ssce/examcell-backend/internal/service"
	"github.com/ssce/examcell-backend/internal/validator"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Submit godoc
// POST /api/attendance
//
// The present list is the payload; absentees are implicit and get no
// stored row. An absent attendanceList (as opposed to an empty one) is
// rejected before any store mutation.
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req model.SubmitAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Message(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if req.AttendanceList == nil {
		response.Message(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}

	id, err := h.attendanceService.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.Message(c, http.StatusBadRequest, response.MsgInvalidDate)
		case errors.Is(err, repository.ErrDuplicateAttendance):
			response.Message(c, http.StatusConflict, response.MsgDuplicateAttendance)
		default:
			response.Internal(c)
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"message": "Attendance submitted successfully.",
		"id":      id,
	})
}
