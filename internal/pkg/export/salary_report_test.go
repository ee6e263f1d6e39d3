package export

import (
	"bytes"
	"testing"

	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSalaryReport(t *testing.T) {
	report := salary.ReportResponse{
		Month: 3,
		Year:  2025,
		Report: []salary.ReportRow{
			{Name: "Alice", BaseSalary: decimal.NewFromInt(31000), TotalDeductions: decimal.Zero, Bonus: decimal.NewFromInt(1000), FinalSalary: decimal.NewFromInt(32000)},
			{Name: "Bob", BaseSalary: decimal.NewFromInt(20000), TotalDeductions: decimal.NewFromInt(400), Bonus: decimal.Zero, FinalSalary: decimal.NewFromInt(19600)},
		},
		TotalSpent: decimal.NewFromInt(51600),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSalaryReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Name", "Base Salary", "Total Deductions", "Bonus", "Final Salary"}, rows[0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "32000", rows[1][4])
	assert.Equal(t, "Bob", rows[2][0])
	assert.Equal(t, "400", rows[2][2])
	assert.Equal(t, "Total Spent", rows[3][0])
	assert.Equal(t, "51600", rows[3][4])
}

func TestWriteSalaryReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSalaryReport(&buf, salary.ReportResponse{Month: 1, Year: 2025, TotalSpent: decimal.Zero}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total Spent", rows[1][0])
	assert.Equal(t, "0", rows[1][4])
}

func TestSalaryReportFilename(t *testing.T) {
	assert.Equal(t, "salary-report-2025-03.xlsx", SalaryReportFilename(salary.ReportResponse{Month: 3, Year: 2025}))
}
