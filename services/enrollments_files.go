package services

import (
	"fmt"
	"io"
	"time"

	"github.com/CPU-commits/Intranet_BAcademix/forms"
	"github.com/CPU-commits/Intranet_BAcademix/funct"
	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EXPORT_XLSX = forms.EXPORT_XLSX
	EXPORT_PDF  = forms.EXPORT_PDF
)

var exportColumns = []string{
	"Course",
	"Category",
	"Level",
	"Duration",
	"Instructor",
	"Enrolled at",
}

// Column widths in mm for the pdf table.
var exportWidths = []float64{80, 40, 30, 30, 50, 40}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case primitive.DateTime:
		return v.Time().UTC().Format("2006-01-02")
	case time.Time:
		return v.UTC().Format("2006-01-02")
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func exportRow(row models.EnrollmentWithCourse) ([]string, error) {
	return []string{
		formatValue(row.Title),
		formatValue(row.Category),
		formatValue(row.Level),
		formatValue(row.Duration),
		formatValue(row.InstructorName),
		formatValue(row.EnrolledAt),
	}, nil
}

func ExportEnrollmentsXlsx(email string, rows []models.EnrollmentWithCourse, w io.Writer) error {
	values, err := funct.Map(rows, exportRow)
	if err != nil {
		return err
	}
	// Init file
	file := excelize.NewFile()
	defer file.Close()
	sheetName := "Enrollments"
	file.SetSheetName("Sheet1", sheetName)
	file.SetCellValue(sheetName, "A1", email)
	// Set columns
	for i, column := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		file.SetCellValue(sheetName, cell, column)
	}
	// Set values
	for i, row := range values {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+3)
			if err != nil {
				return err
			}
			file.SetCellValue(sheetName, cell, value)
		}
	}
	return file.Write(w)
}

func ExportEnrollmentsPdf(email string, rows []models.EnrollmentWithCourse, w io.Writer) error {
	values, err := funct.Map(rows, exportRow)
	if err != nil {
		return err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()
	// Header
	width, height := pdf.GetPageSize()
	rightMargin := width - 5
	pdf.Text(5, 10, "Academix")
	pdf.Text(rightMargin-pdf.GetStringWidth(email), 10, tr(email))
	// Footer
	date := fmt.Sprintf("Issued %s", time.Now().Format("2006-01-02"))
	pdf.Text(5, height-5, date)
	// Table
	pdf.SetXY(5, 20)
	pdf.SetFont("Arial", "B", 10)
	for i, column := range exportColumns {
		pdf.CellFormat(exportWidths[i], 6, column, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range values {
		pdf.SetX(5)
		for i, value := range row {
			pdf.CellFormat(exportWidths[i], 6, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}
