package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// SQLExecutor is the subset of database/sql shared by *sql.DB and *sql.Tx
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// SQLiteCourseRepository handles course database operations on SQLite
type SQLiteCourseRepository struct {
	db SQLExecutor
	sb squirrel.StatementBuilderType
}

// NewSQLiteCourseRepository creates a new SQLiteCourseRepository
func NewSQLiteCourseRepository(db SQLExecutor) *SQLiteCourseRepository {
	return &SQLiteCourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Create creates a new course
func (r *SQLiteCourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.BulkCreate(ctx, []*models.Course{course})
}

// BulkCreate inserts the courses one row at a time so each generated id is
// written back to its own record. When the executor can start transactions
// the inserts run in one.
func (r *SQLiteCourseRepository) BulkCreate(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	exec := r.db
	var tx *sql.Tx
	if b, ok := r.db.(txBeginner); ok {
		var err error
		tx, err = b.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		exec = tx
	}

	for _, c := range courses {
		if err := r.insert(ctx, exec, c); err != nil {
			return err
		}
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}
	return nil
}

func (r *SQLiteCourseRepository) insert(ctx context.Context, exec SQLExecutor, course *models.Course) error {
	var id interface{}
	if course.ID != 0 {
		id = course.ID
	}
	query, args, err := r.sb.Insert(coursesTable).
		Columns(courseColumns...).
		Values(id, course.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := exec.QueryRowContext(ctx, query, args...).Scan(&course.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *SQLiteCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := r.sb.Select(courseColumns...).
		From(coursesTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// List retrieves courses matching the filter in id order
func (r *SQLiteCourseRepository) List(ctx context.Context, filter filters.CourseFilter) ([]*models.Course, error) {
	q := r.sb.Select(courseColumns...).From(coursesTable).OrderBy("id ASC")
	if !filter.IsEmpty() {
		q = q.Where(filter.Eq())
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Update applies a partial update and returns the stored course
func (r *SQLiteCourseRepository) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	query, args, err := r.sb.Update(coursesTable).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

// Delete deletes a course by ID
func (r *SQLiteCourseRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(coursesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Count returns the number of stored courses
func (r *SQLiteCourseRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(coursesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}
