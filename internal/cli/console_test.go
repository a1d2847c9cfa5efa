package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/datastore"
	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	"github.com/AshishRanjanPandey/ccrm/internal/service"
	"github.com/AshishRanjanPandey/ccrm/pkg/storage"
)

type consoleEnv struct {
	console     *Console
	out         *bytes.Buffer
	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
	enrollments *service.EnrollmentService
	store       *datastore.Store
}

func newConsoleEnv(t *testing.T, script string) *consoleEnv {
	t.Helper()

	studentRepo := repository.NewStudentRepository()
	courseRepo := repository.NewCourseRepository()
	ledger := repository.NewEnrollmentLedger()
	logger := zap.NewNop()

	students := service.NewStudentService(studentRepo, nil, logger)
	courses := service.NewCourseService(courseRepo, nil, logger)
	enrollments := service.NewEnrollmentService(ledger, studentRepo, courseRepo, 24, nil, logger)

	exportDir, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	transcripts := service.NewTranscriptService(enrollments, studentRepo, courseRepo, exportDir, nil, nil, logger)

	store, err := datastore.New(t.TempDir(), logger)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	console := New(strings.NewReader(script), out, students, courses, enrollments, transcripts, studentRepo, courseRepo, store, logger)
	return &consoleEnv{
		console:     console,
		out:         out,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		enrollments: enrollments,
		store:       store,
	}
}

func TestConsoleRegisterEnrollGrade(t *testing.T) {
	script := strings.Join([]string{
		"1", "1", "R100", "Ada Lovelace", "ada@campus.edu", // register student
		"2", "1", "CS101", "Intro to CS", "4", "Knuth", "Fall", "CS", // add course
		"3", "1", "R100", "CS101", // enroll
		"3", "2", "R100", "CS101", "a", // assign grade, lower case accepted
		"3", "6", "R100", // GPA
		"0",
	}, "\n") + "\n"

	env := newConsoleEnv(t, script)
	env.console.Run()

	output := env.out.String()
	assert.Contains(t, output, "Created student #1 (R100)")
	assert.Contains(t, output, "Added course CS101 (4 credits)")
	assert.Contains(t, output, "Enrolled.")
	assert.Contains(t, output, "Grade recorded.")
	assert.Contains(t, output, "GPA: 9.00")

	student, ok := env.studentRepo.FindByRegNo("R100")
	require.True(t, ok)
	assert.Equal(t, []string{"CS101"}, student.EnrolledCourseCodes)
}

func TestConsoleDefaultsBlankCredits(t *testing.T) {
	script := strings.Join([]string{
		"2", "1", "CS101", "Intro", "", "Knuth", "Fall", "CS",
		"0",
	}, "\n") + "\n"

	env := newConsoleEnv(t, script)
	env.console.Run()

	course, ok := env.courseRepo.FindByCode("CS101")
	require.True(t, ok)
	assert.Equal(t, 3, course.Credits)
}

func TestConsoleRejectsUnknownGradeLetter(t *testing.T) {
	script := strings.Join([]string{
		"3", "2", "R100", "CS101", "Z",
		"0",
	}, "\n") + "\n"

	env := newConsoleEnv(t, script)
	env.console.Run()

	assert.Contains(t, env.out.String(), "Unknown grade letter: Z")
}

func TestConsoleSaveAndLoadRoundTrip(t *testing.T) {
	script := strings.Join([]string{
		"1", "1", "R100", "Ada", "ada@campus.edu",
		"2", "1", "CS101", "Intro", "4", "Knuth", "Fall", "CS",
		"3", "1", "R100", "CS101",
		"3", "2", "R100", "CS101", "A",
		"4", "1", // save
		"0",
	}, "\n") + "\n"

	env := newConsoleEnv(t, script)
	env.console.Run()
	require.Contains(t, env.out.String(), "Saved.")

	// A fresh session over the same data directory reloads everything.
	reload := newConsoleEnv(t, "4\n2\n0\n")
	reload.store = env.store
	reload.console.store = env.store
	reload.console.Run()
	assert.Contains(t, reload.out.String(), "Loaded 1 students and 1 courses.")

	student, ok := reload.studentRepo.FindByRegNo("R100")
	require.True(t, ok)
	assert.Equal(t, "Ada", student.FullName)
	assert.InDelta(t, 9.0, reload.enrollments.CalculateGPA("R100"), 1e-9)
}

func TestConsoleInputExhaustionStops(t *testing.T) {
	env := newConsoleEnv(t, "")
	env.console.Run()
	assert.Contains(t, env.out.String(), "Welcome to CCRM!")
}
