package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/export"
)

type exportBookingReader interface {
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// Exporter renders a tabular dataset to a concrete format.
type Exporter interface {
	ContentType() string
	FileExtension() string
	Render(ds export.Dataset) ([]byte, error)
}

// ExportResult is a rendered export ready for download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders day schedules for download.
type ExportService struct {
	bookings  exportBookingReader
	exporters map[string]Exporter
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(bookings exportBookingReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		bookings: bookings,
		exporters: map[string]Exporter{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// ExportDay renders the booking schedule for one date in the requested
// format ("csv" or "pdf").
func (s *ExportService) ExportDay(ctx context.Context, date, format string) (*ExportResult, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	items, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	ds := export.Dataset{
		Title:   fmt.Sprintf("Bookings for %s", date),
		Headers: []string{"Time", "Customer", "Phone", "Service", "Barber", "Status"},
		Rows:    make([][]string, 0, len(items)),
	}
	for i := range items {
		b := &items[i]
		barber := "-"
		if b.BarberID != nil {
			barber = *b.BarberID
		}
		ds.Rows = append(ds.Rows, []string{
			b.Time, b.FullName, b.Phone, b.Service, barber, string(b.Status),
		})
	}

	content, err := exporter.Render(ds)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Content:     content,
		ContentType: exporter.ContentType(),
		Filename:    fmt.Sprintf("bookings-%s.%s", date, exporter.FileExtension()),
	}, nil
}
