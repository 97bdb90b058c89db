package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// CourseOptions overrides fixture fields. Zero values are filled with defaults:
// a store-assigned id and a random name.
type CourseOptions struct {
	ID   int64
	Name string
}

// CourseFactory builds course fixtures
type CourseFactory struct {
	repo repositories.CourseRepository
}

// NewCourseFactory returns a factory that persists into repo
func NewCourseFactory(repo repositories.CourseRepository) *CourseFactory {
	return &CourseFactory{repo: repo}
}

// Build returns an unsaved course
func (f *CourseFactory) Build(opts CourseOptions) *models.Course {
	name := opts.Name
	if name == "" {
		name = RandomName()
	}
	return &models.Course{ID: opts.ID, Name: name}
}

// Make builds and stores one course
func (f *CourseFactory) Make(t *testing.T, opts CourseOptions) *models.Course {
	t.Helper()
	c := f.Build(opts)
	require.NoError(t, f.repo.Create(context.Background(), c))
	return c
}

// MakeMany builds and stores one course per options entry in a single bulk insert
func (f *CourseFactory) MakeMany(t *testing.T, opts ...CourseOptions) []*models.Course {
	t.Helper()
	courses := make([]*models.Course, 0, len(opts))
	for _, o := range opts {
		courses = append(courses, f.Build(o))
	}
	require.NoError(t, f.repo.BulkCreate(context.Background(), courses))
	return courses
}

// MakeCourses stores n courses sharing opts. A non-zero opts.ID is only
// honored for the first course.
func MakeCourses(t *testing.T, repo repositories.CourseRepository, n int, opts CourseOptions) []*models.Course {
	t.Helper()
	all := make([]CourseOptions, n)
	for i := range all {
		all[i] = CourseOptions{Name: opts.Name}
	}
	if n > 0 {
		all[0].ID = opts.ID
	}
	return NewCourseFactory(repo).MakeMany(t, all...)
}

// RandomName returns a unique course name
func RandomName() string {
	return "course-" + uuid.NewString()[:8]
}
