package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
)

// EnrollmentLedger is the authoritative, creation-ordered list of enrollment
// facts. Business rules (existence checks, credit ceiling) live in the
// service layer; the ledger only guarantees pair uniqueness and ordering.
type EnrollmentLedger struct {
	mu      sync.RWMutex
	entries []*models.Enrollment
	now     func() time.Time
}

// NewEnrollmentLedger constructs an empty ledger.
func NewEnrollmentLedger() *EnrollmentLedger {
	return &EnrollmentLedger{now: time.Now}
}

func matches(e *models.Enrollment, regNo, courseCode string) bool {
	return e.RegNo == regNo && strings.EqualFold(e.CourseCode, courseCode)
}

// Append adds a new ungraded entry and returns it, or nil when the
// (regNo, courseCode) pair is already present.
func (l *EnrollmentLedger) Append(regNo, courseCode string) *models.Enrollment {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if matches(e, regNo, courseCode) {
			return nil
		}
	}
	entry := &models.Enrollment{
		ID:         uuid.NewString(),
		RegNo:      regNo,
		CourseCode: courseCode,
		EnrolledAt: l.now(),
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Exists reports whether the pair is present.
func (l *EnrollmentLedger) Exists(regNo, courseCode string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if matches(e, regNo, courseCode) {
			return true
		}
	}
	return false
}

// SetGrade assigns or overwrites the grade on a matching entry, returning
// the previous grade and whether an entry was found.
func (l *EnrollmentLedger) SetGrade(regNo, courseCode string, grade models.Grade) (*models.Grade, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if matches(e, regNo, courseCode) {
			prev := e.Grade
			g := grade
			e.Grade = &g
			return prev, true
		}
	}
	return nil, false
}

// Remove deletes the matching entry, preserving order of the rest.
func (l *EnrollmentLedger) Remove(regNo, courseCode string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if matches(e, regNo, courseCode) {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ListForStudent returns the student's entries in ledger order.
func (l *EnrollmentLedger) ListForStudent(regNo string) []*models.Enrollment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*models.Enrollment
	for _, e := range l.entries {
		if e.RegNo == regNo {
			out = append(out, e)
		}
	}
	return out
}

// ListAll returns the entire ledger in creation order.
func (l *EnrollmentLedger) ListAll() []*models.Enrollment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.Enrollment, len(l.entries))
	copy(out, l.entries)
	return out
}
