package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

type courseRepository interface {
	Add(course *models.Course) error
	FindByCode(code string) (*models.Course, bool)
	FindByInstructor(instructor string) []*models.Course
	List() []*models.Course
	Deactivate(code string) bool
}

// CreateCourseRequest holds payload for adding courses.
type CreateCourseRequest struct {
	Code       string `json:"code" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Credits    int    `json:"credits" validate:"required,gt=0"`
	Instructor string `json:"instructor"`
	Semester   string `json:"semester"`
	Department string `json:"department"`
}

// CourseService handles course use-cases over the in-memory repository.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// Create adds a new course to the catalog.
func (s *CourseService) Create(req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := models.NewCourse(req.Code, req.Title, req.Credits, req.Instructor, req.Semester, req.Department)
	if err := s.repo.Add(course); err != nil {
		return nil, err
	}
	s.logger.Info("course added", zap.String("code", course.Code), zap.Int("credits", course.Credits))
	return course, nil
}

// Get returns the course for a code, case-insensitively.
func (s *CourseService) Get(code string) (*models.Course, error) {
	course, ok := s.repo.FindByCode(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// List returns the catalog in insertion order.
func (s *CourseService) List() []*models.Course {
	return s.repo.List()
}

// ByInstructor returns the instructor's courses in catalog order.
func (s *CourseService) ByInstructor(instructor string) []*models.Course {
	return s.repo.FindByInstructor(instructor)
}

// Deactivate flips the one-way active flag.
func (s *CourseService) Deactivate(code string) error {
	if !s.repo.Deactivate(code) {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return nil
}
