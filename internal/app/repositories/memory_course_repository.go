package repositories

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// MemoryCourseRepository keeps courses in process memory. Lists come back
// in id order like the SQL stores; nothing survives a restart.
type MemoryCourseRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*models.Course
	nextID int64
}

// NewMemoryCourseRepository creates an empty in-memory store
func NewMemoryCourseRepository() *MemoryCourseRepository {
	return &MemoryCourseRepository{
		byID:   make(map[int64]*models.Course),
		nextID: 1,
	}
}

// Create creates a new course
func (r *MemoryCourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.BulkCreate(ctx, []*models.Course{course})
}

// BulkCreate inserts all courses or none
func (r *MemoryCourseRepository) BulkCreate(_ context.Context, courses []*models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, len(courses))
	for _, c := range courses {
		if c.ID == 0 {
			continue
		}
		if _, ok := r.byID[c.ID]; ok {
			return apperrors.ErrCourseAlreadyExists
		}
		if _, ok := seen[c.ID]; ok {
			return apperrors.ErrCourseAlreadyExists
		}
		seen[c.ID] = struct{}{}
	}

	for _, c := range courses {
		if c.ID == 0 {
			for {
				if _, taken := r.byID[r.nextID]; !taken {
					if _, pending := seen[r.nextID]; !pending {
						break
					}
				}
				r.nextID++
			}
			c.ID = r.nextID
		}
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
		stored := *c
		r.byID[c.ID] = &stored
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *MemoryCourseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	out := *c
	return &out, nil
}

// List retrieves courses matching the filter ordered by id
func (r *MemoryCourseRepository) List(_ context.Context, filter filters.CourseFilter) ([]*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := []*models.Course{}
	for _, c := range r.byID {
		if !filter.Matches(c) {
			continue
		}
		out := *c
		courses = append(courses, &out)
	}
	slices.SortFunc(courses, func(a, b *models.Course) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return courses, nil
}

// Update applies a partial update and returns the stored course
func (r *MemoryCourseRepository) Update(_ context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	patch.Apply(c)
	out := *c
	return &out, nil
}

// Delete deletes a course by ID
func (r *MemoryCourseRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.byID, id)
	return nil
}

// Count returns the number of stored courses
func (r *MemoryCourseRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
