package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
)

func TestEnrollmentLedgerAppendUnique(t *testing.T) {
	ledger := NewEnrollmentLedger()

	e := ledger.Append("R100", "CS101")
	require.NotNil(t, e)
	assert.NotEmpty(t, e.ID)
	assert.Nil(t, e.Grade)
	assert.False(t, e.EnrolledAt.IsZero())

	// Same pair, case-insensitive course code.
	assert.Nil(t, ledger.Append("R100", "cs101"))
	assert.Len(t, ledger.ListAll(), 1)

	assert.NotNil(t, ledger.Append("R200", "CS101"))
	assert.NotNil(t, ledger.Append("R100", "MA201"))
	assert.Len(t, ledger.ListAll(), 3)
}

func TestEnrollmentLedgerSetGrade(t *testing.T) {
	ledger := NewEnrollmentLedger()
	require.NotNil(t, ledger.Append("R100", "CS101"))

	prev, ok := ledger.SetGrade("R100", "cs101", models.GradeA)
	require.True(t, ok)
	assert.Nil(t, prev)

	prev, ok = ledger.SetGrade("R100", "CS101", models.GradeB)
	require.True(t, ok)
	require.NotNil(t, prev)
	assert.Equal(t, models.GradeA, *prev)

	_, ok = ledger.SetGrade("R100", "MA201", models.GradeA)
	assert.False(t, ok)
	assert.Len(t, ledger.ListAll(), 1)
}

func TestEnrollmentLedgerRemove(t *testing.T) {
	ledger := NewEnrollmentLedger()
	require.NotNil(t, ledger.Append("R100", "CS101"))
	require.NotNil(t, ledger.Append("R100", "MA201"))

	assert.True(t, ledger.Remove("R100", "cs101"))
	assert.False(t, ledger.Remove("R100", "CS101"))

	rest := ledger.ListForStudent("R100")
	require.Len(t, rest, 1)
	assert.Equal(t, "MA201", rest[0].CourseCode)
}

func TestEnrollmentLedgerListOrder(t *testing.T) {
	ledger := NewEnrollmentLedger()
	ledger.Append("R100", "CS101")
	ledger.Append("R200", "CS101")
	ledger.Append("R100", "MA201")

	all := ledger.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, "CS101", all[0].CourseCode)
	assert.Equal(t, "MA201", all[2].CourseCode)

	mine := ledger.ListForStudent("R100")
	require.Len(t, mine, 2)
	assert.Equal(t, "CS101", mine[0].CourseCode)
	assert.Equal(t, "MA201", mine[1].CourseCode)
}
