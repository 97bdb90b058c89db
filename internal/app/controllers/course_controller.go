package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// parseCourseID reads the :id path parameter. An id that is not a number
// cannot name a course, so it is reported as not found.
func parseCourseID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid course id %q: %w", ctx.Param("id"), apperrors.ErrCourseNotFound)
	}
	return id, nil
}

// ListCourses lists courses, optionally filtered
// @Summary List courses
// @Description Returns every course in insertion order. Supplying id and/or name narrows the result to exact matches.
// @Tags courses
// @Produce json
// @Param id query int false "Exact course ID"
// @Param name query string false "Exact course name"
// @Success 200 {array} dto.CourseResponse "Courses"
// @Failure 400 {object} dto.ErrorResponse "Malformed filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/ [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter, err := filters.ParseCourseFilter(ctx.Request.URL.Query())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.courseService.ListCourses(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}

// GetCourse retrieves a course by ID
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.CourseResponse "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/ [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseCourseID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description The id is assigned by the server; an id in the body is ignored.
// @Tags courses
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.CourseResponse "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/ [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewCourseResponse(course))
}

// UpdateCourse partially updates a course
// @Summary Update a course
// @Description Only fields present in the body change. Unknown fields are ignored.
// @Tags courses
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.CourseResponse "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/ [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := parseCourseID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		// a missing course wins over a malformed body
		if _, getErr := c.courseService.GetCourse(ctx, id); getErr != nil {
			middleware.HandleAPIError(ctx, getErr)
			return
		}
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags courses
// @Param id path int true "Course ID" Format(int64)
// @Success 204 "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/ [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, err := parseCourseID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
