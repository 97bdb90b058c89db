package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/controllers"
)

// SetupRouter registers the application route table
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	healthController *controllers.HealthController,
) {
	courses := router.Group("/courses")
	{
		courses.GET("/", courseController.ListCourses)
		courses.POST("/", courseController.CreateCourse)
		courses.GET("/:id/", courseController.GetCourse)
		courses.PATCH("/:id/", courseController.UpdateCourse)
		courses.DELETE("/:id/", courseController.DeleteCourse)
	}

	router.GET("/ping", healthController.Ping)
	router.GET("/health", healthController.Health)
}
