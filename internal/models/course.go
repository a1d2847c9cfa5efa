package models

// Course is a unit of teaching identified by its code. Codes compare
// case-insensitively everywhere.
type Course struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Credits    int    `json:"credits"`
	Instructor string `json:"instructor"`
	Semester   string `json:"semester"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

// NewCourse constructs an active course from caller-supplied data.
func NewCourse(code, title string, credits int, instructor, semester, department string) *Course {
	return &Course{
		Code:       code,
		Title:      title,
		Credits:    credits,
		Instructor: instructor,
		Semester:   semester,
		Department: department,
		Active:     true,
	}
}

// Deactivate flips the one-way active flag.
func (c *Course) Deactivate() {
	c.Active = false
}
