package models

import (
	"strings"
	"time"
)

// Student represents a learner registered in the institution. RegNo is the
// external key; ID is assigned sequentially by the repository and never
// reused.
type Student struct {
	ID                  int       `json:"id"`
	RegNo               string    `json:"reg_no"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	Active              bool      `json:"active"`
	EnrollmentDate      time.Time `json:"enrollment_date"`
	EnrolledCourseCodes []string  `json:"enrolled_course_codes"`
}

// Deactivate flips the one-way active flag. Safe to call repeatedly.
func (s *Student) Deactivate() {
	s.Active = false
}

// EnrollCourse appends the code to the cached course-code projection,
// keeping insertion order and rejecting duplicates. The enrollment ledger is
// the source of truth; this list exists for display only.
func (s *Student) EnrollCourse(code string) {
	for _, c := range s.EnrolledCourseCodes {
		if c == code {
			return
		}
	}
	s.EnrolledCourseCodes = append(s.EnrolledCourseCodes, code)
}

// UnenrollCourse removes the code from the cached projection. Matching is
// case-insensitive like course lookups, so a withdraw always clears the
// mirror regardless of the caller's casing.
func (s *Student) UnenrollCourse(code string) {
	for i, c := range s.EnrolledCourseCodes {
		if strings.EqualFold(c, code) {
			s.EnrolledCourseCodes = append(s.EnrolledCourseCodes[:i], s.EnrolledCourseCodes[i+1:]...)
			return
		}
	}
}
