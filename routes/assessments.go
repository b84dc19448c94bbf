package routes

import (
	"sereno/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAssessmentRoutes registers the assessment endpoints. Starting an
// assessment is public; submission and history require auth.
func SetupAssessmentRoutes(router *gin.Engine, auth *gin.RouterGroup) {
	router.POST("/assessments/start", controllers.StartAssessment)
	auth.POST("/assessments/submit", controllers.SubmitAssessment)
	auth.GET("/assessments/history", controllers.GetAssessmentHistory)
}
