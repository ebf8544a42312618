package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/models"
)

// ExportService renders the teacher views of a topic as an xlsx workbook.
type ExportService interface {
	// ExportTopic builds a two-sheet workbook: the class overview and the
	// practice activity of the topic.
	ExportTopic(ctx context.Context, topic string) ([]byte, error)
}

type exportService struct {
	analytics AnalyticsService
	logger    *slog.Logger
}

func NewExportService(analytics AnalyticsService, logger *slog.Logger) ExportService {
	return &exportService{
		analytics: analytics,
		logger:    logger,
	}
}

func (s *exportService) ExportTopic(ctx context.Context, topic string) ([]byte, error) {
	overview, err := s.analytics.Overview(ctx, topic)
	if err != nil {
		return nil, err
	}
	activity, err := s.analytics.Activity(ctx, topic)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	if err := s.writeOverviewSheet(f, overview); err != nil {
		return nil, err
	}
	if err := s.writeActivitySheet(f, activity); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("Failed to remove default sheet", "error", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Topic export generated",
		"topic", topic, "students", len(overview.Students), "activity_rows", len(activity))

	return buf.Bytes(), nil
}

func (s *exportService) writeOverviewSheet(f *excelize.File, overview *ClassOverview) error {
	sheetName := "Überblick"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Kürzel", "Lernfeld", "Kompetenzbereich", "Genauigkeit", "Level",
		"Level-Label", "Nächste Diagnose", "Versuche", "Zuletzt aktiv",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 0
	for _, student := range overview.Students {
		for _, area := range student.Areas {
			row := []interface{}{
				student.StudentCode,
				overview.Topic,
				area.Label,
				area.Mastery.Accuracy,
				int(area.PracticeLevel),
				models.TierLabels[area.PracticeLevel],
				int(area.DiagnosticLevel),
				area.Mastery.N,
				student.LastSeen.Format("2006-01-02 15:04:05"),
			}
			for colIndex, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
				f.SetCellValue(sheetName, cell, value)
			}
			rowIndex++
		}
	}

	return nil
}

func (s *exportService) writeActivitySheet(f *excelize.File, activity []ActivityRow) error {
	sheetName := "Aktivität"

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Kompetenzbereich", "Aufgabentyp", "Versuche", "Richtig"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, row := range activity {
		values := []interface{}{
			row.AreaLabel,
			string(row.ItemType),
			row.Total,
			row.Correct,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}
