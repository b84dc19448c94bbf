package routes

import (
	"sereno/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the public authentication endpoints
func SetupAuthRoutes(router *gin.Engine) {
	router.POST("/signup", controllers.SignUp)
	router.POST("/login", controllers.Login)
	router.POST("/verifyToken", controllers.VerifyToken)
}

// SetupProfileRoutes registers the authenticated profile endpoints
func SetupProfileRoutes(auth *gin.RouterGroup) {
	auth.GET("/user/fetchprofile", controllers.GetProfile)
	auth.PUT("/user/updateprofile", controllers.UpdateProfile)
}
