package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

func TestCourseServiceCreateAndGet(t *testing.T) {
	svc := NewCourseService(repository.NewCourseRepository(), nil, zap.NewNop())

	created, err := svc.Create(CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4, Instructor: "Knuth"})
	require.NoError(t, err)
	assert.True(t, created.Active)

	got, err := svc.Get("cs101")
	require.NoError(t, err)
	assert.Equal(t, "CS101", got.Code)

	_, err = svc.Get("CS999")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestCourseServiceRejectsNonPositiveCredits(t *testing.T) {
	svc := NewCourseService(repository.NewCourseRepository(), nil, zap.NewNop())

	_, err := svc.Create(CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 0})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCourseServiceDuplicateCode(t *testing.T) {
	svc := NewCourseService(repository.NewCourseRepository(), nil, zap.NewNop())
	_, err := svc.Create(CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4})
	require.NoError(t, err)

	_, err = svc.Create(CreateCourseRequest{Code: "cs101", Title: "Shadow", Credits: 3})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Len(t, svc.List(), 1)
}

func TestCourseServiceByInstructorAndDeactivate(t *testing.T) {
	svc := NewCourseService(repository.NewCourseRepository(), nil, zap.NewNop())
	_, err := svc.Create(CreateCourseRequest{Code: "CS101", Title: "Intro", Credits: 4, Instructor: "Knuth"})
	require.NoError(t, err)
	_, err = svc.Create(CreateCourseRequest{Code: "CS301", Title: "Algorithms", Credits: 4, Instructor: "knuth"})
	require.NoError(t, err)

	assert.Len(t, svc.ByInstructor("KNUTH"), 2)

	require.NoError(t, svc.Deactivate("CS101"))
	got, err := svc.Get("CS101")
	require.NoError(t, err)
	assert.False(t, got.Active)
}
