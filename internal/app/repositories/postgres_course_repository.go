package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// syncSequenceSQL moves the id sequence past any explicitly inserted id
const syncSequenceSQL = `SELECT setval(pg_get_serial_sequence('courses', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM courses), 1))`

// PostgresCourseRepository handles course database operations on PostgreSQL
type PostgresCourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostgresCourseRepository creates a new PostgresCourseRepository
func NewPostgresCourseRepository(db DBTX) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.BulkCreate(ctx, []*models.Course{course})
}

// BulkCreate inserts the courses row by row within a transaction, writing
// each generated id back to its own record
func (r *PostgresCourseRepository) BulkCreate(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	explicitIDs := false
	for _, c := range courses {
		if c.ID != 0 {
			explicitIDs = true
		}
		if err := r.insert(ctx, tx, c); err != nil {
			return err
		}
	}

	if explicitIDs {
		if _, err := tx.Exec(ctx, syncSequenceSQL); err != nil {
			return fmt.Errorf("error syncing course id sequence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresCourseRepository) insert(ctx context.Context, tx pgx.Tx, course *models.Course) error {
	var id interface{} = squirrel.Expr("DEFAULT")
	if course.ID != 0 {
		id = course.ID
	}
	sql, args, err := r.sb.Insert(coursesTable).
		Columns(courseColumns...).
		Values(id, course.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From(coursesTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// List retrieves courses matching the filter in id order
func (r *PostgresCourseRepository) List(ctx context.Context, filter filters.CourseFilter) ([]*models.Course, error) {
	q := r.sb.Select(courseColumns...).From(coursesTable).OrderBy("id ASC")
	if !filter.IsEmpty() {
		q = q.Where(filter.Eq())
	}
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
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
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update applies a partial update and returns the stored course
func (r *PostgresCourseRepository) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	sql, args, err := r.sb.Update(coursesTable).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// Delete deletes a course by ID
func (r *PostgresCourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(coursesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Count returns the number of stored courses
func (r *PostgresCourseRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(coursesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}
