package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

func TestStudentServiceCreateAndGet(t *testing.T) {
	svc := NewStudentService(repository.NewStudentRepository(), nil, zap.NewNop())

	created, err := svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada Lovelace", Email: "ada@campus.edu"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.True(t, created.Active)

	got, err := svc.Get("R100")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "ada@campus.edu", got.Email)
}

func TestStudentServiceValidation(t *testing.T) {
	svc := NewStudentService(repository.NewStudentRepository(), nil, zap.NewNop())

	_, err := svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStudentServiceDuplicate(t *testing.T) {
	svc := NewStudentService(repository.NewStudentRepository(), nil, zap.NewNop())
	_, err := svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada", Email: "ada@campus.edu"})
	require.NoError(t, err)

	_, err = svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Eve", Email: "eve@campus.edu"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestStudentServiceDeactivate(t *testing.T) {
	svc := NewStudentService(repository.NewStudentRepository(), nil, zap.NewNop())
	_, err := svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada", Email: "ada@campus.edu"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate("R100"))
	got, err := svc.Get("R100")
	require.NoError(t, err)
	assert.False(t, got.Active)

	err = svc.Deactivate("missing")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceUpdate(t *testing.T) {
	svc := NewStudentService(repository.NewStudentRepository(), nil, zap.NewNop())
	_, err := svc.Create(CreateStudentRequest{RegNo: "R100", FullName: "Ada", Email: "ada@campus.edu"})
	require.NoError(t, err)

	got, err := svc.Update("R100", UpdateStudentRequest{Email: "lovelace@campus.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "lovelace@campus.edu", got.Email)
}
