package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

type enrollmentLedger interface {
	Append(regNo, courseCode string) *models.Enrollment
	Exists(regNo, courseCode string) bool
	SetGrade(regNo, courseCode string, grade models.Grade) (*models.Grade, bool)
	Remove(regNo, courseCode string) bool
	ListForStudent(regNo string) []*models.Enrollment
	ListAll() []*models.Enrollment
}

type studentDirectory interface {
	FindByRegNo(regNo string) (*models.Student, bool)
	AppendCourseCode(regNo, code string)
	RemoveCourseCode(regNo, code string)
}

type courseCatalog interface {
	FindByCode(code string) (*models.Course, bool)
}

// decisionObserver counts accept/reject outcomes for scraping.
type decisionObserver interface {
	ObserveEnrollment(outcome string)
}

// EnrollRequest describes an enrollment attempt.
type EnrollRequest struct {
	RegNo      string `json:"reg_no" validate:"required"`
	CourseCode string `json:"course_code" validate:"required"`
}

// AssignGradeRequest describes a grade assignment. Grade must already be a
// member of the closed scale; translating raw input is the caller's job.
type AssignGradeRequest struct {
	RegNo      string       `json:"reg_no" validate:"required"`
	CourseCode string       `json:"course_code" validate:"required"`
	Grade      models.Grade `json:"grade" validate:"required"`
}

// EnrollmentService enforces the enrollment business rules over the ledger:
// party existence, pair uniqueness and the per-student credit ceiling. The
// ledger is the sole source of truth for credit and GPA math; the
// student-side course list is a projection this service keeps in sync.
type EnrollmentService struct {
	ledger     enrollmentLedger
	students   studentDirectory
	courses    courseCatalog
	maxCredits int
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    decisionObserver
}

// NewEnrollmentService constructs EnrollmentService. maxCredits <= 0 falls
// back to the default ceiling of 24.
func NewEnrollmentService(ledger enrollmentLedger, students studentDirectory, courses courseCatalog, maxCredits int, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if maxCredits <= 0 {
		maxCredits = 24
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		ledger:     ledger,
		students:   students,
		courses:    courses,
		maxCredits: maxCredits,
		validator:  validate,
		logger:     logger,
	}
}

// WithMetrics attaches an enrollment decision counter. Without it decisions
// are not observed.
func (s *EnrollmentService) WithMetrics(m decisionObserver) *EnrollmentService {
	s.metrics = m
	return s
}

func (s *EnrollmentService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveEnrollment(outcome)
	}
}

// Enroll registers a student on a course. It rejects unknown parties,
// repeated pairs and any enrollment that would push the student's total
// credit weight above the ceiling, each with a distinct error code. On
// success the ledger entry is appended and the student's cached course list
// is updated in the same call.
func (s *EnrollmentService) Enroll(req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, ok := s.students.FindByRegNo(req.RegNo); !ok {
		s.observe("rejected_unknown_party")
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	course, ok := s.courses.FindByCode(req.CourseCode)
	if !ok {
		s.observe("rejected_unknown_party")
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	// The catalog casing is canonical from here on; the ledger entry and the
	// student mirror must carry the same code.
	if s.ledger.Exists(req.RegNo, course.Code) {
		s.observe("rejected_duplicate")
		return nil, appErrors.ErrDuplicateEnrollment
	}
	// Recomputed fresh so credit edits on courses count immediately.
	current := s.StudentTotalCredits(req.RegNo)
	if current+course.Credits > s.maxCredits {
		s.logger.Info("enrollment rejected over credit ceiling",
			zap.String("reg_no", req.RegNo),
			zap.String("course_code", req.CourseCode),
			zap.Int("current_credits", current),
			zap.Int("course_credits", course.Credits),
			zap.Int("ceiling", s.maxCredits),
		)
		s.observe("rejected_credit_limit")
		return nil, appErrors.ErrCreditLimitExceeded
	}
	entry := s.ledger.Append(req.RegNo, course.Code)
	if entry == nil {
		s.observe("rejected_duplicate")
		return nil, appErrors.ErrDuplicateEnrollment
	}
	s.students.AppendCourseCode(req.RegNo, course.Code)
	s.observe("accepted")
	return entry, nil
}

// AssignGrade finalizes (or re-finalizes) an enrollment. Overwriting an
// existing grade is permitted but logged.
func (s *EnrollmentService) AssignGrade(req AssignGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if !req.Grade.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown grade letter")
	}
	prev, ok := s.ledger.SetGrade(req.RegNo, req.CourseCode, req.Grade)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	if prev != nil && *prev != req.Grade {
		s.logger.Warn("grade overwritten",
			zap.String("reg_no", req.RegNo),
			zap.String("course_code", req.CourseCode),
			zap.String("previous", string(*prev)),
			zap.String("new", string(req.Grade)),
		)
	}
	return nil
}

// Withdraw removes an enrollment and the student's cached course code. The
// caller's casing is mapped back to the catalog code so both removals hit
// the same entry.
func (s *EnrollmentService) Withdraw(regNo, courseCode string) error {
	if course, ok := s.courses.FindByCode(courseCode); ok {
		courseCode = course.Code
	}
	if !s.ledger.Remove(regNo, courseCode) {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	s.students.RemoveCourseCode(regNo, courseCode)
	return nil
}

// StudentTotalCredits sums the credit weights of every course the student
// holds a ledger entry for, graded or not. Course weights are looked up
// fresh at call time.
func (s *EnrollmentService) StudentTotalCredits(regNo string) int {
	sum := 0
	for _, e := range s.ledger.ListForStudent(regNo) {
		if course, ok := s.courses.FindByCode(e.CourseCode); ok {
			sum += course.Credits
		}
	}
	return sum
}

// CalculateGPA returns the credit-weighted average of grade points over the
// student's graded entries. Entries whose course no longer resolves are
// skipped. Zero graded entries yield exactly 0.0.
func (s *EnrollmentService) CalculateGPA(regNo string) float64 {
	totalPoints := 0
	totalCredits := 0
	for _, e := range s.ledger.ListForStudent(regNo) {
		if !e.Graded() {
			continue
		}
		course, ok := s.courses.FindByCode(e.CourseCode)
		if !ok {
			continue
		}
		totalPoints += e.Grade.Points() * course.Credits
		totalCredits += course.Credits
	}
	if totalCredits == 0 {
		return 0.0
	}
	return float64(totalPoints) / float64(totalCredits)
}

// ListForStudent returns the student's entries in ledger order.
func (s *EnrollmentService) ListForStudent(regNo string) []*models.Enrollment {
	return s.ledger.ListForStudent(regNo)
}

// ListAll returns the whole ledger in creation order.
func (s *EnrollmentService) ListAll() []*models.Enrollment {
	return s.ledger.ListAll()
}
