package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
	"github.com/noah-isme/exam-notify-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders send-log and unmatched-recipient reports.
type ExportService struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewExportService constructs an ExportService.
func NewExportService() *ExportService {
	return &ExportService{csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// RenderAuditLog exports send-log entries in the requested format and
// returns the bytes, content type and suggested filename.
func (s *ExportService) RenderAuditLog(entries []models.AuditLogView, format string) ([]byte, string, string, error) {
	dataset := export.Dataset{
		Headers: []string{"Time", "Phone", "Contact", "Provider", "Status", "Delivery", "OK"},
	}
	for _, e := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Time":     e.Time.UTC().Format(time.RFC3339),
			"Phone":    e.Phone,
			"Contact":  e.Contact,
			"Provider": e.Provider,
			"Status":   e.Status,
			"Delivery": string(e.DeliveryStatus),
			"OK":       fmt.Sprintf("%t", e.OK),
		})
	}
	return s.render(dataset, format, "send log", "send_log")
}

// RenderUnmatched exports the unmatched recipients of a preparation run.
func (s *ExportService) RenderUnmatched(records []models.UnmatchedRecord, format string) ([]byte, string, string, error) {
	dataset := export.Dataset{
		Headers: []string{"Exam", "Student", "Reason"},
	}
	for _, r := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Exam":    r.ExamName,
			"Student": r.StudentName,
			"Reason":  string(r.Reason),
		})
	}
	return s.render(dataset, format, "unmatched recipients", "unmatched")
}

func (s *ExportService) render(dataset export.Dataset, format, title, basename string) ([]byte, string, string, error) {
	switch format {
	case ExportFormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return data, "text/csv", basename + ".csv", nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return data, "application/pdf", basename + ".pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
