package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context, filter filters.CourseFilter) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	BulkCreateCourses(ctx context.Context, courses []*models.Course) error
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	CountCourses(ctx context.Context) (int64, error)
}

// nameRules apply to a course name that is present in the input
const nameRules = "notblank,max=255"

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		validate:   validation.New(),
		logger:     logger.With().Str("component", "course_service").Logger(),
	}
}

// ListCourses returns all courses, or those matching filter
func (s *courseServiceImpl) ListCourses(ctx context.Context, filter filters.CourseFilter) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CreateCourse validates the request and stores a new course with a store-assigned id
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if req == nil || req.Name == nil {
		return nil, apperrors.FieldError("name", validation.MsgRequired)
	}
	if err := s.checkName("name", *req.Name); err != nil {
		return nil, err
	}

	course := &models.Course{Name: *req.Name}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Msg("Course created")
	return course, nil
}

// BulkCreateCourses stores several courses at once, honoring explicit ids
func (s *courseServiceImpl) BulkCreateCourses(ctx context.Context, courses []*models.Course) error {
	verr := apperrors.NewValidationError()
	for i, c := range courses {
		if err := s.validate.Var(c.Name, nameRules); err != nil {
			for _, msg := range validation.Messages(err) {
				verr.Add(fmt.Sprintf("[%d].name", i), msg)
			}
		}
	}
	if verr.HasErrors() {
		return verr
	}

	if err := s.courseRepo.BulkCreate(ctx, courses); err != nil {
		return fmt.Errorf("error bulk creating courses: %w", err)
	}
	s.logger.Info().Int("count", len(courses)).Msg("Courses bulk created")
	return nil
}

// UpdateCourse applies a partial update. Absent fields are untouched.
// An unknown id is reported before any problem with the request.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return nil, err
	}

	if req == nil {
		req = &dto.UpdateCourseRequest{}
	}
	if req.NameNull {
		return nil, apperrors.FieldError("name", validation.MsgNull)
	}
	if req.Name != nil {
		if err := s.checkName("name", *req.Name); err != nil {
			return nil, err
		}
	}

	course, err := s.courseRepo.Update(ctx, id, req.Patch())
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course updated")
	return course, nil
}

// DeleteCourse deletes a course by ID
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

// CountCourses returns the number of stored courses
func (s *courseServiceImpl) CountCourses(ctx context.Context) (int64, error) {
	n, err := s.courseRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}

func (s *courseServiceImpl) checkName(field, name string) error {
	if err := s.validate.Var(name, nameRules); err != nil {
		verr := apperrors.NewValidationError()
		for _, msg := range validation.Messages(err) {
			verr.Add(field, msg)
		}
		return verr
	}
	return nil
}
