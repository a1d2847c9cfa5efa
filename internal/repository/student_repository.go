package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

// StudentRepository owns the set of student records, keyed by registration
// number. All state is in-process memory; the RWMutex makes the repository
// safe when the core is served behind a concurrent HTTP boundary.
type StudentRepository struct {
	mu      sync.RWMutex
	byRegNo map[string]*models.Student
	nextID  int
	now     func() time.Time
}

// NewStudentRepository constructs an empty repository. Sequential ids start
// at 1 and are never reused.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byRegNo: make(map[string]*models.Student),
		nextID:  1,
		now:     time.Now,
	}
}

// Create registers a new student, assigning the next sequential id and
// stamping today's date. A registration number already in use is rejected
// with a conflict instead of silently shadowing the earlier record.
func (r *StudentRepository) Create(regNo, fullName, email string) (*models.Student, error) {
	regNo = strings.TrimSpace(regNo)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byRegNo[regNo]; exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already in use")
	}
	s := &models.Student{
		ID:             r.nextID,
		RegNo:          regNo,
		FullName:       fullName,
		Email:          email,
		Active:         true,
		EnrollmentDate: r.now(),
	}
	r.nextID++
	r.byRegNo[regNo] = s
	return s, nil
}

// FindByRegNo performs an exact-string key lookup.
func (r *StudentRepository) FindByRegNo(regNo string) (*models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byRegNo[regNo]
	return s, ok
}

// List returns all records ordered by ascending id.
func (r *StudentRepository) List() []*models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Student, 0, len(r.byRegNo))
	for _, s := range r.byRegNo {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Deactivate sets the active flag false if the student exists and reports
// whether a record was found. Idempotent.
func (r *StudentRepository) Deactivate(regNo string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byRegNo[regNo]
	if !ok {
		return false
	}
	s.Deactivate()
	return true
}

// UpdateContact mutates the student's name and email. Blank values leave
// the current field untouched.
func (r *StudentRepository) UpdateContact(regNo, fullName, email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byRegNo[regNo]
	if !ok {
		return false
	}
	if fullName != "" {
		s.FullName = fullName
	}
	if email != "" {
		s.Email = email
	}
	return true
}

// AppendCourseCode records a course code on the student's cached projection.
// Called only by the enrollment ledger alongside its own append.
func (r *StudentRepository) AppendCourseCode(regNo, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byRegNo[regNo]; ok {
		s.EnrollCourse(code)
	}
}

// RemoveCourseCode drops a course code from the cached projection.
func (r *StudentRepository) RemoveCourseCode(regNo, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byRegNo[regNo]; ok {
		s.UnenrollCourse(code)
	}
}

// Restore replaces the repository contents with imported records and moves
// the id counter past the highest imported id so later ids stay unique.
func (r *StudentRepository) Restore(students []*models.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byRegNo = make(map[string]*models.Student, len(students))
	maxID := 0
	for _, s := range students {
		r.byRegNo[s.RegNo] = s
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	r.nextID = maxID + 1
}
