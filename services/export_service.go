package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

// ExportService renders a user's scan history as CSV or XLSX.
type ExportService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExportService(db *gorm.DB, log *logger.Logger) *ExportService {
	return &ExportService{db: db, log: log.With("service", "ExportService")}
}

var exportHeaders = []string{
	"Date", "Meal Type", "Food", "Quantity (g)",
	"Calories", "Carbs (g)", "Protein (g)", "Fat (g)", "Notes",
}

// CSV returns one row per scanned food line, oldest scan first.
func (s *ExportService) CSV(userID uint, from, to *time.Time) ([]byte, error) {
	scans, err := s.scansForExport(userID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}

	for _, scan := range scans {
		for _, food := range scan.Foods {
			record := []string{
				scan.ScannedAt.Format("2006-01-02 15:04"),
				scan.MealType,
				food.Name,
				formatFloat(food.Quantity),
				formatFloat(food.Calories),
				formatFloat(food.Carbs),
				formatFloat(food.Protein),
				formatFloat(food.Fat),
				scan.Notes,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX returns a workbook with the same rows as CSV plus a totals column set
// per scan.
func (s *ExportService) XLSX(userID uint, from, to *time.Time) ([]byte, error) {
	scans, err := s.scansForExport(userID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Scans"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	write := func(col int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for _, scan := range scans {
		for _, food := range scan.Foods {
			write(1, scan.ScannedAt.Format("2006-01-02 15:04"))
			write(2, scan.MealType)
			write(3, food.Name)
			write(4, food.Quantity)
			write(5, food.Calories)
			write(6, food.Carbs)
			write(7, food.Protein)
			write(8, food.Fat)
			write(9, scan.Notes)
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) scansForExport(userID uint, from, to *time.Time) ([]models.Scan, error) {
	q := s.db.Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("scanned_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("scanned_at <= ?", *to)
	}

	var scans []models.Scan
	err := q.
		Preload("Foods").
		Order("scanned_at ASC").
		Find(&scans).Error
	return scans, err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
