package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/filters"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/validation"
	"github.com/yigit/coursehub/internal/testutil"
)

func newService(t *testing.T) (services.CourseService, repositories.CourseRepository) {
	t.Helper()
	repo := testutil.NewMemoryRepository(t)
	return services.NewCourseService(repo, zerolog.Nop()), repo
}

func ptr[T any](v T) *T { return &v }

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestCreateCourse(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{Name: ptr("1st")})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.Equal(t, "1st", course.Name)

	stored, err := repo.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, stored)
}

func TestCreateCourse_Invalid(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.CreateCourseRequest
		want []string
	}{
		{name: "nil request", req: nil, want: []string{validation.MsgRequired}},
		{name: "missing name", req: &dto.CreateCourseRequest{}, want: []string{validation.MsgRequired}},
		{name: "empty name", req: &dto.CreateCourseRequest{Name: ptr("")}, want: []string{validation.MsgBlank}},
		{name: "blank name", req: &dto.CreateCourseRequest{Name: ptr("   ")}, want: []string{validation.MsgBlank}},
		{name: "too long", req: &dto.CreateCourseRequest{Name: ptr(strings.Repeat("x", 256))}, want: []string{"Ensure this field has no more than 255 characters."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(ctx, tt.req)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.want, fieldErrors(t, err)["name"])
		})
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "invalid requests store nothing")
}

func TestBulkCreateCourses(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	courses := []*models.Course{{ID: 4, Name: "a"}, {ID: 5, Name: "b"}, {Name: "c"}}
	require.NoError(t, svc.BulkCreateCourses(ctx, courses))

	n, err := svc.CountCourses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NotZero(t, courses[2].ID)
}

func TestBulkCreateCourses_ReportsIndexedErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	err := svc.BulkCreateCourses(ctx, []*models.Course{{Name: "ok"}, {Name: " "}, {Name: ""}})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	fields := fieldErrors(t, err)
	assert.Equal(t, []string{validation.MsgBlank}, fields["[1].name"])
	assert.Equal(t, []string{validation.MsgBlank}, fields["[2].name"])
	assert.NotContains(t, fields, "[0].name")

	n, err := svc.CountCourses(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBulkCreateCourses_Conflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.BulkCreateCourses(ctx, []*models.Course{{ID: 1, Name: "a"}}))
	err := svc.BulkCreateCourses(ctx, []*models.Course{{ID: 1, Name: "b"}})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestListCourses(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	testutil.NewCourseFactory(repo).MakeMany(t,
		testutil.CourseOptions{ID: 4, Name: "test_1"},
		testutil.CourseOptions{ID: 5, Name: "test_2"},
		testutil.CourseOptions{ID: 8, Name: "test_3"},
	)

	all, err := svc.ListCourses(ctx, filters.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := svc.ListCourses(ctx, filters.ByID(5))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "test_2", one[0].Name)
}

func TestGetCourse_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetCourse(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateCourse(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	c := testutil.NewCourseFactory(repo).Make(t, testutil.CourseOptions{Name: "before"})

	name := "1st"
	updated, err := svc.UpdateCourse(ctx, c.ID, &dto.UpdateCourseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "1st", updated.Name)

	unchanged, err := svc.UpdateCourse(ctx, c.ID, &dto.UpdateCourseRequest{})
	require.NoError(t, err)
	assert.Equal(t, "1st", unchanged.Name)

	viaNil, err := svc.UpdateCourse(ctx, c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "1st", viaNil.Name)
}

func TestUpdateCourse_BlankName(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	c := testutil.NewCourseFactory(repo).Make(t, testutil.CourseOptions{Name: "keep"})

	_, err := svc.UpdateCourse(ctx, c.ID, &dto.UpdateCourseRequest{Name: ptr("")})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, []string{validation.MsgBlank}, fieldErrors(t, err)["name"])

	_, err = svc.UpdateCourse(ctx, c.ID, &dto.UpdateCourseRequest{NameNull: true})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, []string{validation.MsgNull}, fieldErrors(t, err)["name"])

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Name)
}

func TestUpdateCourse_NotFound(t *testing.T) {
	svc, _ := newService(t)
	name := "x"

	_, err := svc.UpdateCourse(context.Background(), 7, &dto.UpdateCourseRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// an invalid body does not hide the missing course
	_, err = svc.UpdateCourse(context.Background(), 7, &dto.UpdateCourseRequest{Name: ptr("")})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteCourse(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	c := testutil.NewCourseFactory(repo).Make(t, testutil.CourseOptions{})

	require.NoError(t, svc.DeleteCourse(ctx, c.ID))
	_, err := svc.GetCourse(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	assert.ErrorIs(t, svc.DeleteCourse(ctx, c.ID), apperrors.ErrCourseNotFound)
}

type failingRepo struct {
	repositories.CourseRepository
	err error
}

func (f failingRepo) List(context.Context, filters.CourseFilter) ([]*models.Course, error) {
	return nil, f.err
}

func (f failingRepo) Count(context.Context) (int64, error) { return 0, f.err }

func TestStoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	svc := services.NewCourseService(failingRepo{err: boom}, zerolog.Nop())

	_, err := svc.ListCourses(context.Background(), filters.CourseFilter{})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.CountCourses(context.Background())
	assert.ErrorIs(t, err, boom)
}
