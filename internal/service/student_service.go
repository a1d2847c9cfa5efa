package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
)

type studentRepository interface {
	Create(regNo, fullName, email string) (*models.Student, error)
	FindByRegNo(regNo string) (*models.Student, bool)
	List() []*models.Student
	Deactivate(regNo string) bool
	UpdateContact(regNo, fullName, email string) bool
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	RegNo    string `json:"reg_no" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateStudentRequest holds payload for contact updates. Blank fields are
// left unchanged.
type UpdateStudentRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// StudentService handles student use-cases over the in-memory repository.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new student.
func (s *StudentService) Create(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.Create(req.RegNo, req.FullName, req.Email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.Int("id", student.ID), zap.String("reg_no", student.RegNo))
	return student, nil
}

// Get returns the student for a registration number.
func (s *StudentService) Get(regNo string) (*models.Student, error) {
	student, ok := s.repo.FindByRegNo(regNo)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// List returns all students ordered by ascending id.
func (s *StudentService) List() []*models.Student {
	return s.repo.List()
}

// Update mutates name and/or email.
func (s *StudentService) Update(regNo string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !s.repo.UpdateContact(regNo, req.FullName, req.Email) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student, _ := s.repo.FindByRegNo(regNo)
	return student, nil
}

// Deactivate flips the one-way active flag.
func (s *StudentService) Deactivate(regNo string) error {
	if !s.repo.Deactivate(regNo) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}
