package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/export"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

// ExportFormat selects the schedule download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ContentType returns the response content type for the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

type rosterExportReader interface {
	ListByCollection(ctx context.Context, col models.Collection) ([]models.StudentEntry, error)
}

// ScheduleExportService renders the weekly roster as a downloadable file
// for the teacher console.
type ScheduleExportService struct {
	students rosterExportReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	title    string
	logger   *zap.Logger
}

// NewScheduleExportService constructs ScheduleExportService. title heads the
// PDF sheet, typically the studio display name.
func NewScheduleExportService(students rosterExportReader, title string, logger *zap.Logger) *ScheduleExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleExportService{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		title:    title,
		logger:   logger,
	}
}

// Render builds the weekly schedule table and encodes it in the requested
// format. Rows are ordered by day of week, then lesson start time.
func (s *ScheduleExportService) Render(ctx context.Context, format ExportFormat) ([]byte, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	roster, err := s.students.ListByCollection(ctx, models.CollectionRoster)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	sort.SliceStable(roster, func(a, b int) bool {
		if roster[a].LessonDay != roster[b].LessonDay {
			return models.WeekOrder[roster[a].LessonDay] < models.WeekOrder[roster[b].LessonDay]
		}
		return roster[a].LessonTimeMinutes < roster[b].LessonTimeMinutes
	})

	table := export.Table{
		Title:   s.title + " Weekly Schedule",
		Columns: []string{"Day", "Time", "Duration", "Student", "Skill Level", "Phone", "Email"},
		Rows:    make([][]string, 0, len(roster)),
	}
	for _, student := range roster {
		table.Rows = append(table.Rows, []string{
			string(student.LessonDay),
			timeutil.FormatTime(timeutil.FromMinutes(student.LessonTimeMinutes)),
			timeutil.FormatDuration(timeutil.MinutesToDuration(student.DurationMinutes)),
			student.StudentName,
			student.SkillLevel,
			student.PhoneNumber,
			student.EmailAddress,
		})
	}

	var payload []byte
	if format == ExportFormatPDF {
		payload, err = s.pdf.Render(table)
	} else {
		payload, err = s.csv.Render(table)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule")
	}
	return payload, nil
}
