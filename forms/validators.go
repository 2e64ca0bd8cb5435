package forms

import "github.com/go-playground/validator/v10"

const (
	EXPORT_XLSX = "xlsx"
	EXPORT_PDF  = "pdf"
)

func ExportFormat(fl validator.FieldLevel) bool {
	format := fl.Field().String()
	return format == EXPORT_XLSX || format == EXPORT_PDF
}
