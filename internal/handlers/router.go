package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pvpk06/quiz-analysis-service/internal/services"
	"github.com/pvpk06/quiz-analysis-service/internal/utils"
)

type HandlerManager struct {
	analysisHandler *AnalysisHandler
}

func NewHandlerManager(
	analysisService services.AnalysisService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		analysisHandler: NewAnalysisHandler(analysisService, exportService, validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-analysis-service",
		})
	})

	// Response analysis routes; paths match what the admin frontend calls
	responses := router.Group("/quiz-responses")
	{
		responses.GET("/:token", hm.analysisHandler.GetQuizResponses)
		responses.GET("/:token/summary", hm.analysisHandler.GetQuizSummary)
		responses.GET("/:token/export", hm.analysisHandler.ExportQuizResponses)
	}
}
