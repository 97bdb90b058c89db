package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// HealthController reports liveness and store state
type HealthController struct {
	courseService services.CourseService
	driver        string
}

// NewHealthController creates a new HealthController
func NewHealthController(courseService services.CourseService, driver string) *HealthController {
	return &HealthController{courseService: courseService, driver: driver}
}

// Ping answers with pong
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /ping [get]
func (h *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.PingResponse{Message: "pong", Status: "success"})
}

// Health checks that the store answers
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.ErrorResponse "Store unavailable"
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	n, err := h.courseService.CountCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Driver:  h.driver,
		Courses: n,
	})
}
