package service

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/models"
	appErrors "github.com/AshishRanjanPandey/ccrm/pkg/errors"
	"github.com/AshishRanjanPandey/ccrm/pkg/export"
)

// Format selects the rendered transcript output.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

type transcriptSource interface {
	ListForStudent(regNo string) []*models.Enrollment
	StudentTotalCredits(regNo string) int
	CalculateGPA(regNo string) float64
}

type studentFinder interface {
	FindByRegNo(regNo string) (*models.Student, bool)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, summary ...string) ([]byte, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

// TranscriptResult captures successful generation metadata.
type TranscriptResult struct {
	RelativePath string `json:"relative_path"`
	AbsolutePath string `json:"absolute_path"`
	Format       Format `json:"format"`
}

// TranscriptService renders a student's enrollments, grades, credit total
// and GPA into a stored CSV or PDF file.
type TranscriptService struct {
	source   transcriptSource
	students studentFinder
	courses  courseCatalog
	storage  fileStorage
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewTranscriptService constructs a TranscriptService.
func NewTranscriptService(source transcriptSource, students studentFinder, courses courseCatalog, storage fileStorage, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *TranscriptService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		source:   source,
		students: students,
		courses:  courses,
		storage:  storage,
		csv:      csv,
		pdf:      pdf,
		logger:   logger,
	}
}

// Generate builds the transcript dataset and stores the rendered file under
// a unique token filename, returning where it landed.
func (s *TranscriptService) Generate(regNo string, format Format) (*TranscriptResult, error) {
	student, ok := s.students.FindByRegNo(regNo)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	dataset := export.Dataset{Headers: []string{"Course", "Title", "Credits", "Grade", "Points"}}
	for _, e := range s.source.ListForStudent(regNo) {
		row := map[string]string{"Course": e.CourseCode, "Grade": "IN PROGRESS", "Points": "-"}
		if course, found := s.courses.FindByCode(e.CourseCode); found {
			row["Title"] = course.Title
			row["Credits"] = strconv.Itoa(course.Credits)
		}
		if e.Graded() {
			row["Grade"] = string(*e.Grade)
			row["Points"] = strconv.Itoa(e.Grade.Points())
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	totalCredits := s.source.StudentTotalCredits(regNo)
	gpa := s.source.CalculateGPA(regNo)
	title := fmt.Sprintf("Transcript - %s (%s)", student.FullName, student.RegNo)
	summary := []string{
		fmt.Sprintf("Total credits: %d", totalCredits),
		fmt.Sprintf("GPA: %.2f", gpa),
	}

	var payload []byte
	var err error
	switch format {
	case FormatPDF:
		payload, err = s.pdf.Render(dataset, title, summary...)
	case FormatCSV:
		payload, err = s.csv.Render(dataset)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported transcript format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}

	filename := fmt.Sprintf("transcript_%s_%s.%s", student.RegNo, uuid.NewString(), format)
	rel, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store transcript")
	}
	s.logger.Info("transcript generated",
		zap.String("reg_no", student.RegNo),
		zap.String("file", rel),
		zap.String("format", string(format)),
	)
	return &TranscriptResult{RelativePath: rel, AbsolutePath: s.storage.Path(rel), Format: format}, nil
}
