// Package datastore persists repository snapshots as flat CSV files.
//
// The wire format is a compatibility contract: comma-separated fields with
// literal commas escaped as backslash-comma, and semicolons separating the
// members of list-valued fields. encoding/csv is deliberately not used here
// because its quote-based escaping would change the on-disk format.
package datastore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
)

const (
	studentsFile    = "students.csv"
	coursesFile     = "courses.csv"
	enrollmentsFile = "enrollments.csv"

	dateLayout = "2006-01-02"
)

// Store reads and writes snapshot files under a data directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New ensures the data directory exists and returns a store handle.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// SaveStudents writes the student snapshot.
func (s *Store) SaveStudents(students []*models.Student) error {
	lines := []string{"id,regNo,fullName,email,active,enrollmentDate,enrolledCourses"}
	for _, st := range students {
		enrolled := strings.Join(st.EnrolledCourseCodes, ";")
		lines = append(lines, fmt.Sprintf("%d,%s,%s,%s,%t,%s,%s",
			st.ID, st.RegNo, escape(st.FullName), st.Email,
			st.Active, st.EnrollmentDate.Format(dateLayout), escape(enrolled)))
	}
	return s.writeLines(studentsFile, lines)
}

// LoadStudents reads the student snapshot, returning an empty slice when no
// file exists. Malformed rows are skipped with a warning.
func (s *Store) LoadStudents() ([]*models.Student, error) {
	rows, err := s.readRows(studentsFile)
	if err != nil {
		return nil, err
	}
	var students []*models.Student
	for _, fields := range rows {
		if len(fields) < 6 {
			s.logger.Warn("skipping malformed student row", zap.Int("fields", len(fields)))
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			s.logger.Warn("skipping student row with bad id", zap.String("id", fields[0]))
			continue
		}
		date, err := time.Parse(dateLayout, fields[5])
		if err != nil {
			s.logger.Warn("skipping student row with bad date", zap.String("date", fields[5]))
			continue
		}
		st := &models.Student{
			ID:             id,
			RegNo:          fields[1],
			FullName:       fields[2],
			Email:          fields[3],
			Active:         fields[4] == "true",
			EnrollmentDate: date,
		}
		if len(fields) > 6 && fields[6] != "" {
			for _, code := range strings.Split(fields[6], ";") {
				if code = strings.TrimSpace(code); code != "" {
					st.EnrollCourse(code)
				}
			}
		}
		students = append(students, st)
	}
	return students, nil
}

// SaveCourses writes the course snapshot.
func (s *Store) SaveCourses(courses []*models.Course) error {
	lines := []string{"code,title,credits,instructor,semester,department,active"}
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("%s,%s,%d,%s,%s,%s,%t",
			c.Code, escape(c.Title), c.Credits, escape(c.Instructor),
			escape(c.Semester), escape(c.Department), c.Active))
	}
	return s.writeLines(coursesFile, lines)
}

// LoadCourses reads the course snapshot, empty when no file exists.
func (s *Store) LoadCourses() ([]*models.Course, error) {
	rows, err := s.readRows(coursesFile)
	if err != nil {
		return nil, err
	}
	var courses []*models.Course
	for _, fields := range rows {
		if len(fields) < 7 {
			s.logger.Warn("skipping malformed course row", zap.Int("fields", len(fields)))
			continue
		}
		credits, err := strconv.Atoi(fields[2])
		if err != nil {
			s.logger.Warn("skipping course row with bad credits", zap.String("credits", fields[2]))
			continue
		}
		c := models.NewCourse(fields[0], fields[1], credits, fields[3], fields[4], fields[5])
		if fields[6] != "true" {
			c.Deactivate()
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// SaveEnrollments writes the ledger companion file: registration number,
// course code and the grade letter (blank while in progress).
func (s *Store) SaveEnrollments(entries []*models.Enrollment) error {
	lines := []string{"regNo,courseCode,grade"}
	for _, e := range entries {
		grade := ""
		if e.Graded() {
			grade = string(*e.Grade)
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s", e.RegNo, e.CourseCode, grade))
	}
	return s.writeLines(enrollmentsFile, lines)
}

// ReplayEnrollments rebuilds the ledger by replaying enroll and grade calls
// from the companion file. Student and course snapshots must already be
// loaded; rows the callbacks reject are skipped with a warning.
func (s *Store) ReplayEnrollments(enroll func(regNo, courseCode string) error, grade func(regNo, courseCode string, g models.Grade) error) error {
	rows, err := s.readRows(enrollmentsFile)
	if err != nil {
		return err
	}
	for _, fields := range rows {
		if len(fields) < 2 {
			s.logger.Warn("skipping malformed enrollment row", zap.Int("fields", len(fields)))
			continue
		}
		regNo, courseCode := fields[0], fields[1]
		if err := enroll(regNo, courseCode); err != nil {
			s.logger.Warn("enrollment replay rejected",
				zap.String("reg_no", regNo),
				zap.String("course_code", courseCode),
				zap.Error(err),
			)
			continue
		}
		if len(fields) > 2 && fields[2] != "" {
			g, ok := models.ParseGrade(fields[2])
			if !ok {
				s.logger.Warn("skipping unknown grade on replay", zap.String("grade", fields[2]))
				continue
			}
			if err := grade(regNo, courseCode, g); err != nil {
				s.logger.Warn("grade replay rejected",
					zap.String("reg_no", regNo),
					zap.String("course_code", courseCode),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Backup copies the snapshot files into a timestamped sibling directory and
// returns its path. Earlier backups are not copied into new ones.
func (s *Store) Backup() (string, error) {
	ts := time.Now().Format("20060102_150405")
	backupDir := filepath.Join(s.dir, "backup_"+ts)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("read data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(backupDir, entry.Name()), data, 0o644); err != nil {
			return "", fmt.Errorf("copy %s: %w", entry.Name(), err)
		}
	}
	s.logger.Info("backup created", zap.String("dir", backupDir))
	return backupDir, nil
}

// DirectorySize returns the recursive byte total of regular files under
// path, 0 when the path does not exist.
func DirectorySize(path string) (int64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}
	var total int64
	err := filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", path, err)
	}
	return total, nil
}

func (s *Store) writeLines(name string, lines []string) error {
	path := filepath.Join(s.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer file.Close() //nolint:errcheck
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

// readRows returns the parsed data rows of a snapshot file, skipping the
// header. A missing file yields no rows and no error.
func (s *Store) readRows(name string) ([][]string, error) {
	path := filepath.Join(s.dir, name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close() //nolint:errcheck

	var rows [][]string
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}

// splitLine splits on commas honoring backslash escapes.
func splitLine(line string) []string {
	var out []string
	var sb strings.Builder
	esc := false
	for _, ch := range line {
		switch {
		case esc:
			sb.WriteRune(ch)
			esc = false
		case ch == '\\':
			esc = true
		case ch == ',':
			out = append(out, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(ch)
		}
	}
	out = append(out, sb.String())
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, ",", "\\,")
}
