package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/response"
	"github.com/ssce/examcell-backend/internal/service"
)

type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListByBatchDept godoc
// GET /api/students/:batch/:deptCode
//
// An empty roster is still a success with an empty list; the caller
// decides whether that matters.
func (h *StudentHandler) ListByBatchDept(c *gin.Context) {
	batch := c.Param("batch")
	deptCode := c.Param("deptCode")

	students, err := h.studentService.ListStudents(c.Request.Context(), batch, deptCode)
	if err != nil {
		response.Internal(c)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"list": students})
}
