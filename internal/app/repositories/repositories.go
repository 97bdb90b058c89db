package repositories

// Repositories holds all the repository instances
type Repositories struct {
	Driver           string
	CourseRepository CourseRepository
}

// NewPostgresRepositories initializes repositories backed by PostgreSQL
func NewPostgresRepositories(db DBTX) *Repositories {
	return &Repositories{
		Driver:           "postgres",
		CourseRepository: NewPostgresCourseRepository(db),
	}
}

// NewSQLiteRepositories initializes repositories backed by SQLite
func NewSQLiteRepositories(db SQLExecutor) *Repositories {
	return &Repositories{
		Driver:           "sqlite",
		CourseRepository: NewSQLiteCourseRepository(db),
	}
}

// NewMemoryRepositories initializes in-memory repositories
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Driver:           "memory",
		CourseRepository: NewMemoryCourseRepository(),
	}
}
