// Package filters turns list query parameters into store predicates.
package filters

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// Recognized query parameter names
const (
	ParamID   = "id"
	ParamName = "name"
)

// CourseFilter is a conjunction of equality predicates on course fields.
// A nil field does not constrain the result.
type CourseFilter struct {
	ID   *int64
	Name *string
}

// ParseCourseFilter builds a filter from request query parameters.
// Unrecognized keys and empty values are ignored. A non-integer id is a
// validation error keyed "id".
func ParseCourseFilter(values url.Values) (CourseFilter, error) {
	var f CourseFilter

	if raw := strings.TrimSpace(values.Get(ParamID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return CourseFilter{}, apperrors.FieldError(ParamID, "Enter a number.")
		}
		f.ID = &id
	}

	if name := values.Get(ParamName); name != "" {
		f.Name = &name
	}

	return f, nil
}

// ByID returns a filter matching a single id
func ByID(id int64) CourseFilter {
	return CourseFilter{ID: &id}
}

// ByName returns a filter matching an exact name
func ByName(name string) CourseFilter {
	return CourseFilter{Name: &name}
}

// IsEmpty reports whether the filter matches everything
func (f CourseFilter) IsEmpty() bool {
	return f.ID == nil && f.Name == nil
}

// Eq renders the filter as a squirrel equality map. Multiple keys are ANDed.
func (f CourseFilter) Eq() squirrel.Eq {
	eq := squirrel.Eq{}
	if f.ID != nil {
		eq["id"] = *f.ID
	}
	if f.Name != nil {
		eq["name"] = *f.Name
	}
	return eq
}

// Matches evaluates the filter against an in-memory course
func (f CourseFilter) Matches(c *models.Course) bool {
	if f.ID != nil && c.ID != *f.ID {
		return false
	}
	if f.Name != nil && c.Name != *f.Name {
		return false
	}
	return true
}
