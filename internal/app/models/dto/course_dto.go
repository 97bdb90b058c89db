package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/yigit/coursehub/internal/app/models"
)

// CourseResponse is the wire representation of a course
type CourseResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Algorithms"`
}

// CreateCourseRequest represents course creation data.
// Accepted as JSON or form data. A nil Name means the field was absent.
type CreateCourseRequest struct {
	Name *string `json:"name" form:"name" example:"Algorithms"`
}

// UpdateCourseRequest represents a partial course update.
// Fields left out of the body are not touched; unknown fields are ignored.
type UpdateCourseRequest struct {
	Name *string `json:"name" form:"name" example:"Data Structures"`

	// NameNull is set when the JSON body carries "name": null
	NameNull bool `json:"-" form:"-" swaggerignore:"true"`
}

// UnmarshalJSON keeps an explicit null apart from an absent field
func (r *UpdateCourseRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	value, ok := raw["name"]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		r.NameNull = true
		return nil
	}

	var name string
	if err := json.Unmarshal(value, &name); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			typeErr.Field = "name"
		}
		return err
	}
	r.Name = &name
	return nil
}

// Patch converts the request into a store patch
func (r *UpdateCourseRequest) Patch() models.CoursePatch {
	return models.CoursePatch{Name: r.Name}
}

// NewCourseResponse serializes a course
func NewCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{
		ID:   course.ID,
		Name: course.Name,
	}
}

// NewCourseListResponse serializes a list of courses; never returns nil
func NewCourseListResponse(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
