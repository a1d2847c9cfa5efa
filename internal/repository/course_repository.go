package repository

import (
	"strings"
	"sync"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

// CourseRepository owns the set of course records in insertion order. Codes
// compare case-insensitively.
type CourseRepository struct {
	mu      sync.RWMutex
	courses []*models.Course
}

// NewCourseRepository constructs an empty repository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{}
}

// Add inserts a course. A code already present (case-insensitive) is
// rejected with a conflict so the earlier record cannot be shadowed.
func (r *CourseRepository) Add(course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if strings.EqualFold(c.Code, course.Code) {
			return appErrors.Clone(appErrors.ErrConflict, "course code already in use")
		}
	}
	r.courses = append(r.courses, course)
	return nil
}

// FindByCode returns the first course matching the code, case-insensitively.
func (r *CourseRepository) FindByCode(code string) (*models.Course, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.courses {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return nil, false
}

// FindByInstructor returns every course taught by the instructor,
// case-insensitive exact match, in repository order.
func (r *CourseRepository) FindByInstructor(instructor string) []*models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Course
	for _, c := range r.courses {
		if strings.EqualFold(c.Instructor, instructor) {
			out = append(out, c)
		}
	}
	return out
}

// List returns all courses in insertion order.
func (r *CourseRepository) List() []*models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Course, len(r.courses))
	copy(out, r.courses)
	return out
}

// Deactivate sets the active flag false if the course exists and reports
// whether a record was found. Idempotent.
func (r *CourseRepository) Deactivate(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if strings.EqualFold(c.Code, code) {
			c.Deactivate()
			return true
		}
	}
	return false
}

// Restore replaces the repository contents with imported records.
func (r *CourseRepository) Restore(courses []*models.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = make([]*models.Course, len(courses))
	copy(r.courses, courses)
}
