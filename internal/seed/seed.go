package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursehub/internal/app/models"
	appServices "github.com/yigit/coursehub/internal/app/services"
)

// CreateDefaultData inserts the configured course names when the store is empty.
// A store that already holds courses is left alone so restarts never duplicate rows.
func CreateDefaultData(ctx context.Context, svc appServices.CourseService, names []string, lgr zerolog.Logger) error {
	if len(names) == 0 {
		return nil
	}

	lgr.Info().Int("configured", len(names)).Msg("Checking/Creating default courses...")

	count, err := svc.CountCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("existing", count).Msg("Courses already present, skipping seed")
		return nil
	}

	var finalErr error
	courses := make([]*appModels.Course, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			finalErr = errors.Join(finalErr, errors.New("seed course name may not be blank"))
			continue
		}
		courses = append(courses, &appModels.Course{Name: name})
	}

	if len(courses) > 0 {
		if err := svc.BulkCreateCourses(ctx, courses); err != nil {
			lgr.Error().Err(err).Msg("Error creating default courses")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int("created", len(courses)).Msg("Default courses created")
		}
	}

	return finalErr
}
