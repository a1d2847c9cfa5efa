package models

import "time"

// Enrollment links one student to one course, with an optional grade. A nil
// grade means the course is still in progress. The (RegNo, CourseCode) pair
// is unique within the ledger; ID is an internal handle.
type Enrollment struct {
	ID         string    `json:"id"`
	RegNo      string    `json:"reg_no"`
	CourseCode string    `json:"course_code"`
	Grade      *Grade    `json:"grade,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Graded reports whether a grade has been assigned.
func (e *Enrollment) Graded() bool {
	return e.Grade != nil
}
