package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API keeps the envelope its UI already speaks: {"success": true,
// ...payload} for data and {"success": false, "message": ...} for every
// expected failure. Empty lookups are messages, not faults; only real
// server errors use 5xx.

// User-visible messages for the expected failure conditions.
const (
	MsgNoPapers            = "No papers found for given criteria."
	MsgNoExams             = "No exams found for these criteria."
	MsgInvalidPayload      = "Invalid payload"
	MsgInvalidDate         = "Invalid date. Expected YYYY-MM-DD."
	MsgDuplicateAttendance = "Attendance already submitted for this exam."
	MsgNoStudentsSelected  = "No students selected"
	MsgTooManyRequests     = "Too many requests. Please try again later."
	MsgInternal            = "Internal server error."
)

// OK sends {"success": true} merged with the payload fields.
func OK(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Message sends {"success": false, "message": message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
}

// Internal sends a generic 500 without leaking the underlying error.
func Internal(c *gin.Context) {
	Message(c, http.StatusInternalServerError, MsgInternal)
}

// AbortMessage aborts the middleware chain with a failure message.
func AbortMessage(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "message": message})
}
