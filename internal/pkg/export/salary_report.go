package export

import (
	"fmt"
	"io"

	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	reportSheet     = "Salary Report"
)

var reportHeader = []interface{}{"Name", "Base Salary", "Total Deductions", "Bonus", "Final Salary"}

// SalaryReportFilename names the download for a report month
func SalaryReportFilename(report salary.ReportResponse) string {
	return fmt.Sprintf("salary-report-%04d-%02d.xlsx", report.Year, report.Month)
}

// WriteSalaryReport renders the report as a single-sheet workbook: a header
// row, one row per staff member and a closing total row.
func WriteSalaryReport(w io.Writer, report salary.ReportResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, "A1", "E1", boldStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 30); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "B", "E", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	rowNum := 2
	for _, row := range report.Report {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		values := []interface{}{
			row.Name,
			row.BaseSalary.InexactFloat64(),
			row.TotalDeductions.InexactFloat64(),
			row.Bonus.InexactFloat64(),
			row.FinalSalary.InexactFloat64(),
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(1, rowNum)
	totalValue, _ := excelize.CoordinatesToCellName(5, rowNum)
	if err := f.SetCellValue(reportSheet, totalLabel, "Total Spent"); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellValue(reportSheet, totalValue, report.TotalSpent.InexactFloat64()); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, totalLabel, totalValue, boldStyle); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
