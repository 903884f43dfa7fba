package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseTokenParam extracts and trims the quiz token path parameter, writing
// a 400 response when it is empty. Callers must return on "".
func ParseTokenParam(c *gin.Context) string {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token cannot be empty"})
		return ""
	}
	return token
}
