package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pvpk06/quiz-analysis-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse is the error body for every endpoint: the admin frontend
// reads the `error` field verbatim.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogError logs error details with request context
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.logger.LogError(err, message, fields...)
}

// LogInfo logs informational messages with request context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.logger.Info(message, fields...)
}

// RespondWithError sends the `{error}` body and logs the failure
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}
