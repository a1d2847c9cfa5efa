// Package cli implements the interactive console. All prompt parsing lives
// here: grade letters are translated into the closed scale and blank numeric
// input falls back to defaults before anything reaches the services.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/datastore"
	"github.com/AshishRanjanPandey/ccrm/internal/models"
	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	"github.com/AshishRanjanPandey/ccrm/internal/service"
)

// Console drives the menu loop against the services.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	students    *service.StudentService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	transcripts *service.TranscriptService

	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
	store       *datastore.Store

	logger *zap.Logger
}

// New constructs a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer,
	students *service.StudentService, courses *service.CourseService,
	enrollments *service.EnrollmentService, transcripts *service.TranscriptService,
	studentRepo *repository.StudentRepository, courseRepo *repository.CourseRepository,
	store *datastore.Store, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		transcripts: transcripts,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		store:       store,
		logger:      logger,
	}
}

// Run loops the main menu until the user exits or input ends.
func (c *Console) Run() {
	fmt.Fprintln(c.out, "Welcome to CCRM!")
	for {
		fmt.Fprintln(c.out, "\nMain Menu:")
		fmt.Fprintln(c.out, "1. Manage Students")
		fmt.Fprintln(c.out, "2. Manage Courses")
		fmt.Fprintln(c.out, "3. Enrollment & Grades")
		fmt.Fprintln(c.out, "4. Data & Backups")
		fmt.Fprintln(c.out, "0. Exit")
		choice, ok := c.readIntPrompt("Enter choice: ", -1)
		if !ok {
			return
		}
		switch choice {
		case 1:
			c.studentMenu()
		case 2:
			c.courseMenu()
		case 3:
			c.enrollmentMenu()
		case 4:
			c.dataMenu()
		case 0:
			fmt.Fprintln(c.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice, try again.")
		}
	}
}

func (c *Console) studentMenu() {
	fmt.Fprintln(c.out, "\nStudents:")
	fmt.Fprintln(c.out, "1. Register student")
	fmt.Fprintln(c.out, "2. List students")
	fmt.Fprintln(c.out, "3. Show profile")
	fmt.Fprintln(c.out, "4. Update contact")
	fmt.Fprintln(c.out, "5. Deactivate student")
	choice, ok := c.readIntPrompt("Enter choice: ", 0)
	if !ok {
		return
	}
	switch choice {
	case 1:
		regNo, _ := c.readPrompt("RegNo: ")
		name, _ := c.readPrompt("Full name: ")
		email, _ := c.readPrompt("Email: ")
		student, err := c.students.Create(service.CreateStudentRequest{RegNo: regNo, FullName: name, Email: email})
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintf(c.out, "Created student #%d (%s)\n", student.ID, student.RegNo)
	case 2:
		for _, s := range c.students.List() {
			c.printStudentLine(s)
		}
	case 3:
		regNo, _ := c.readPrompt("RegNo: ")
		student, err := c.students.Get(regNo)
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		c.printProfile(student)
	case 4:
		regNo, _ := c.readPrompt("RegNo: ")
		name, _ := c.readPrompt("Full name (blank keeps current): ")
		email, _ := c.readPrompt("Email (blank keeps current): ")
		if _, err := c.students.Update(regNo, service.UpdateStudentRequest{FullName: name, Email: email}); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Updated.")
	case 5:
		regNo, _ := c.readPrompt("RegNo: ")
		if err := c.students.Deactivate(regNo); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Deactivated.")
	}
}

func (c *Console) courseMenu() {
	fmt.Fprintln(c.out, "\nCourses:")
	fmt.Fprintln(c.out, "1. Add course")
	fmt.Fprintln(c.out, "2. List courses")
	fmt.Fprintln(c.out, "3. Find by code")
	fmt.Fprintln(c.out, "4. Find by instructor")
	fmt.Fprintln(c.out, "5. Deactivate course")
	choice, ok := c.readIntPrompt("Enter choice: ", 0)
	if !ok {
		return
	}
	switch choice {
	case 1:
		code, _ := c.readPrompt("Code: ")
		title, _ := c.readPrompt("Title: ")
		credits, _ := c.readIntPrompt("Credits [3]: ", 3)
		instructor, _ := c.readPrompt("Instructor: ")
		semester, _ := c.readPrompt("Semester: ")
		department, _ := c.readPrompt("Department: ")
		course, err := c.courses.Create(service.CreateCourseRequest{
			Code: code, Title: title, Credits: credits,
			Instructor: instructor, Semester: semester, Department: department,
		})
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintf(c.out, "Added course %s (%d credits)\n", course.Code, course.Credits)
	case 2:
		for _, course := range c.courses.List() {
			c.printCourseLine(course)
		}
	case 3:
		code, _ := c.readPrompt("Code: ")
		course, err := c.courses.Get(code)
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		c.printCourseLine(course)
	case 4:
		instructor, _ := c.readPrompt("Instructor: ")
		for _, course := range c.courses.ByInstructor(instructor) {
			c.printCourseLine(course)
		}
	case 5:
		code, _ := c.readPrompt("Code: ")
		if err := c.courses.Deactivate(code); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Deactivated.")
	}
}

func (c *Console) enrollmentMenu() {
	fmt.Fprintln(c.out, "\nEnrollment & Grades:")
	fmt.Fprintln(c.out, "1. Enroll student")
	fmt.Fprintln(c.out, "2. Assign grade")
	fmt.Fprintln(c.out, "3. Withdraw")
	fmt.Fprintln(c.out, "4. List enrollments for student")
	fmt.Fprintln(c.out, "5. Total credits")
	fmt.Fprintln(c.out, "6. GPA")
	fmt.Fprintln(c.out, "7. Export transcript")
	fmt.Fprintln(c.out, "8. List all enrollments")
	choice, ok := c.readIntPrompt("Enter choice: ", 0)
	if !ok {
		return
	}
	switch choice {
	case 1:
		regNo, _ := c.readPrompt("RegNo: ")
		code, _ := c.readPrompt("Course code: ")
		if _, err := c.enrollments.Enroll(service.EnrollRequest{RegNo: regNo, CourseCode: code}); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Enrolled.")
	case 2:
		regNo, _ := c.readPrompt("RegNo: ")
		code, _ := c.readPrompt("Course code: ")
		raw, _ := c.readPrompt("Grade (S/A/B/C/D/E/F): ")
		grade, ok := models.ParseGrade(raw)
		if !ok {
			fmt.Fprintln(c.out, "Unknown grade letter:", raw)
			return
		}
		if err := c.enrollments.AssignGrade(service.AssignGradeRequest{RegNo: regNo, CourseCode: code, Grade: grade}); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Grade recorded.")
	case 3:
		regNo, _ := c.readPrompt("RegNo: ")
		code, _ := c.readPrompt("Course code: ")
		if err := c.enrollments.Withdraw(regNo, code); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Withdrawn.")
	case 4:
		regNo, _ := c.readPrompt("RegNo: ")
		for _, e := range c.enrollments.ListForStudent(regNo) {
			c.printEnrollmentLine(e)
		}
	case 5:
		regNo, _ := c.readPrompt("RegNo: ")
		fmt.Fprintf(c.out, "Total credits: %d\n", c.enrollments.StudentTotalCredits(regNo))
	case 6:
		regNo, _ := c.readPrompt("RegNo: ")
		fmt.Fprintf(c.out, "GPA: %.2f\n", c.enrollments.CalculateGPA(regNo))
	case 7:
		regNo, _ := c.readPrompt("RegNo: ")
		raw, _ := c.readPrompt("Format (csv/pdf) [csv]: ")
		format := service.FormatCSV
		if strings.EqualFold(strings.TrimSpace(raw), "pdf") {
			format = service.FormatPDF
		}
		result, err := c.transcripts.Generate(regNo, format)
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Transcript written to", result.AbsolutePath)
	case 8:
		for _, e := range c.enrollments.ListAll() {
			c.printEnrollmentLine(e)
		}
	}
}

func (c *Console) dataMenu() {
	fmt.Fprintln(c.out, "\nData & Backups:")
	fmt.Fprintln(c.out, "1. Save snapshots")
	fmt.Fprintln(c.out, "2. Load snapshots")
	fmt.Fprintln(c.out, "3. Backup data directory")
	fmt.Fprintln(c.out, "4. Show data size")
	choice, ok := c.readIntPrompt("Enter choice: ", 0)
	if !ok {
		return
	}
	switch choice {
	case 1:
		if err := c.store.SaveStudents(c.studentRepo.List()); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		if err := c.store.SaveCourses(c.courseRepo.List()); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		if err := c.store.SaveEnrollments(c.enrollments.ListAll()); err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Saved.")
	case 2:
		c.loadSnapshots()
	case 3:
		dir, err := c.store.Backup()
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintln(c.out, "Backup created at", dir)
	case 4:
		size, err := datastore.DirectorySize(c.store.Dir())
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			return
		}
		fmt.Fprintf(c.out, "Data directory uses %d bytes\n", size)
	}
}

// loadSnapshots restores both repositories and replays the enrollment file
// through the ledger so grades and credit state are rebuilt through the
// normal rules.
func (c *Console) loadSnapshots() {
	students, err := c.store.LoadStudents()
	if err != nil {
		fmt.Fprintln(c.out, "Error:", err)
		return
	}
	courses, err := c.store.LoadCourses()
	if err != nil {
		fmt.Fprintln(c.out, "Error:", err)
		return
	}
	c.studentRepo.Restore(students)
	c.courseRepo.Restore(courses)

	err = c.store.ReplayEnrollments(
		func(regNo, code string) error {
			_, enrollErr := c.enrollments.Enroll(service.EnrollRequest{RegNo: regNo, CourseCode: code})
			return enrollErr
		},
		func(regNo, code string, g models.Grade) error {
			return c.enrollments.AssignGrade(service.AssignGradeRequest{RegNo: regNo, CourseCode: code, Grade: g})
		},
	)
	if err != nil {
		fmt.Fprintln(c.out, "Error:", err)
		return
	}
	fmt.Fprintf(c.out, "Loaded %d students and %d courses.\n", len(students), len(courses))
}

func (c *Console) printStudentLine(s *models.Student) {
	status := "ACTIVE"
	if !s.Active {
		status = "INACTIVE"
	}
	fmt.Fprintf(c.out, "%d | %s | %s | %s | %s\n", s.ID, s.RegNo, s.FullName, s.Email, status)
}

func (c *Console) printProfile(s *models.Student) {
	fmt.Fprintln(c.out, "----- PROFILE -----")
	fmt.Fprintf(c.out, "ID: %d\nRegNo: %s\nName: %s\nEmail: %s\n", s.ID, s.RegNo, s.FullName, s.Email)
	fmt.Fprintf(c.out, "Enrolled courses: %s\n", strings.Join(s.EnrolledCourseCodes, ", "))
	fmt.Fprintf(c.out, "Enrollment date: %s\n", s.EnrollmentDate.Format("2006-01-02"))
	status := "ACTIVE"
	if !s.Active {
		status = "INACTIVE"
	}
	fmt.Fprintf(c.out, "Status: %s\n", status)
}

func (c *Console) printCourseLine(course *models.Course) {
	status := "ACTIVE"
	if !course.Active {
		status = "INACTIVE"
	}
	fmt.Fprintf(c.out, "%s | %s | %dcr | %s | %s | %s | %s\n",
		course.Code, course.Title, course.Credits, course.Instructor,
		course.Semester, course.Department, status)
}

func (c *Console) printEnrollmentLine(e *models.Enrollment) {
	grade := "N/A"
	if e.Graded() {
		grade = string(*e.Grade)
	}
	fmt.Fprintf(c.out, "%s - %s : %s\n", e.CourseCode, e.RegNo, grade)
}

// readPrompt prints the prompt and returns the trimmed next line. The bool
// is false once input is exhausted.
func (c *Console) readPrompt(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// readIntPrompt parses an integer, falling back to def on blank or invalid
// input.
func (c *Console) readIntPrompt(prompt string, def int) (int, bool) {
	raw, ok := c.readPrompt(prompt)
	if !ok {
		return def, false
	}
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid number. Using default: %d\n", def)
		return def, true
	}
	return n, true
}
