package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

func TestCourseRepositoryAddAndFind(t *testing.T) {
	repo := NewCourseRepository()
	require.NoError(t, repo.Add(models.NewCourse("CS101", "Intro to CS", 4, "Knuth", "Fall", "CS")))

	c, ok := repo.FindByCode("cs101")
	require.True(t, ok)
	assert.Equal(t, "CS101", c.Code)
	assert.Equal(t, 4, c.Credits)
	assert.True(t, c.Active)

	_, ok = repo.FindByCode("CS999")
	assert.False(t, ok)
}

func TestCourseRepositoryDuplicateCode(t *testing.T) {
	repo := NewCourseRepository()
	require.NoError(t, repo.Add(models.NewCourse("CS101", "Intro", 4, "Knuth", "Fall", "CS")))

	err := repo.Add(models.NewCourse("cs101", "Shadow", 3, "Other", "Fall", "CS"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Len(t, repo.List(), 1)
}

func TestCourseRepositoryFindByInstructor(t *testing.T) {
	repo := NewCourseRepository()
	require.NoError(t, repo.Add(models.NewCourse("CS101", "Intro", 4, "Knuth", "Fall", "CS")))
	require.NoError(t, repo.Add(models.NewCourse("MA201", "Calculus", 3, "Euler", "Fall", "Math")))
	require.NoError(t, repo.Add(models.NewCourse("CS301", "Algorithms", 4, "knuth", "Spring", "CS")))

	courses := repo.FindByInstructor("KNUTH")
	require.Len(t, courses, 2)
	// Repository order is preserved.
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, "CS301", courses[1].Code)

	assert.Empty(t, repo.FindByInstructor("Gauss"))
}

func TestCourseRepositoryDeactivate(t *testing.T) {
	repo := NewCourseRepository()
	require.NoError(t, repo.Add(models.NewCourse("CS101", "Intro", 4, "Knuth", "Fall", "CS")))

	assert.True(t, repo.Deactivate("CS101"))
	c, _ := repo.FindByCode("CS101")
	assert.False(t, c.Active)

	assert.True(t, repo.Deactivate("cs101"))
	assert.False(t, repo.Deactivate("CS999"))
}
