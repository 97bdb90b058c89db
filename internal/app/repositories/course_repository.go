package repositories

import (
	"context"

	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
)

// courseColumns is the select list shared by the SQL stores
var courseColumns = []string{"id", "name"}

const coursesTable = "courses"

// CourseRepository is the persistence contract for courses.
// List results are ordered by id on every store.
type CourseRepository interface {
	// Create inserts a course. A zero ID is assigned by the store and
	// written back into course.
	Create(ctx context.Context, course *models.Course) error
	// BulkCreate inserts all courses atomically, honoring explicit ids.
	BulkCreate(ctx context.Context, courses []*models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter filters.CourseFilter) ([]*models.Course, error)
	Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
