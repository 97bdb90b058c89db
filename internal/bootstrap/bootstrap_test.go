package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetupDatabase_Drivers(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database.Driver = config.DriverMemory

		repos, closer, err := SetupDatabase(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		defer closer()
		assert.Equal(t, "memory", repos.Driver)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = filepath.Join(t.TempDir(), "courses.db")

		repos, closer, err := SetupDatabase(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		defer closer()
		assert.Equal(t, "sqlite", repos.Driver)

		n, err := repos.CourseRepository.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database.Driver = "oracle"

		_, _, err := SetupDatabase(ctx, cfg, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestBuildDependencies_Seeds(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Database.Driver = config.DriverMemory
	cfg.Seed.Courses = []string{"Algebra", "Physics"}

	repos, closer, err := SetupDatabase(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closer()

	deps, err := BuildDependencies(ctx, cfg, repos, zerolog.Nop())
	require.NoError(t, err)

	n, err := deps.CourseService.CountCourses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = BuildDependencies(ctx, cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestSetupRouter_Routes(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Database.Driver = config.DriverMemory

	repos, closer, err := SetupDatabase(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closer()
	deps, err := BuildDependencies(ctx, cfg, repos, zerolog.Nop())
	require.NoError(t, err)

	router := SetupRouter(cfg, deps, zerolog.Nop())

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /courses/",
		"POST /courses/",
		"GET /courses/:id/",
		"PATCH /courses/:id/",
		"DELETE /courses/:id/",
		"GET /ping",
		"GET /health",
		"GET /swagger/*any",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoadConfigAndSetupLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DB_DRIVER", "memory")

	cfg, _, err := LoadConfigAndSetupLogger(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	t.Setenv("DB_DRIVER", "nope")
	_, _, err = LoadConfigAndSetupLogger(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
