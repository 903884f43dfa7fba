package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvpk06/quiz-analysis-service/internal/services"
	"github.com/pvpk06/quiz-analysis-service/internal/utils"
)

// AnalysisHandler serves the quiz response listing, its summary statistics
// and the Excel export.
type AnalysisHandler struct {
	BaseHandler
	analysisService services.AnalysisService
	exportService   services.ExportService
	validator       *utils.Validator
}

func NewAnalysisHandler(
	analysisService services.AnalysisService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:     NewBaseHandler(logger),
		analysisService: analysisService,
		exportService:   exportService,
		validator:       validator,
	}
}

// tokenParam extracts and validates the quiz token path parameter.
func (h *AnalysisHandler) tokenParam(c *gin.Context) (string, bool) {
	token := ParseTokenParam(c)
	if token == "" {
		return "", false
	}
	if err := h.validator.Var(token, "max=128"); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid token", err)
		return "", false
	}
	return token, true
}

// GetQuizResponses handles GET /quiz-responses/:token
func (h *AnalysisHandler) GetQuizResponses(c *gin.Context) {
	token, ok := h.tokenParam(c)
	if !ok {
		return
	}

	payload, err := h.analysisService.GetQuizResponses(c.Request.Context(), token)
	if err != nil {
		if services.IsNotFound(err) {
			h.RespondWithError(c, http.StatusNotFound, "quiz not found", err)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "failed to fetch quiz responses", err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetQuizSummary handles GET /quiz-responses/:token/summary
func (h *AnalysisHandler) GetQuizSummary(c *gin.Context) {
	token, ok := h.tokenParam(c)
	if !ok {
		return
	}

	summary, err := h.analysisService.GetSummary(c.Request.Context(), token)
	if err != nil {
		if services.IsNotFound(err) {
			h.RespondWithError(c, http.StatusNotFound, "quiz not found", err)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "failed to build quiz summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportQuizResponses handles GET /quiz-responses/:token/export
func (h *AnalysisHandler) ExportQuizResponses(c *gin.Context) {
	token, ok := h.tokenParam(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportResponses(c.Request.Context(), token)
	if err != nil {
		if services.IsNotFound(err) {
			h.RespondWithError(c, http.StatusNotFound, "quiz not found", err)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "failed to export quiz responses", err)
		return
	}

	h.LogInfo(c, "exported quiz responses", "token", token, "bytes", len(data))

	filename := fmt.Sprintf("quiz-responses-%s.xlsx", token)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
