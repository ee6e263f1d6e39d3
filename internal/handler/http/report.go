package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/response"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/export"
)

type ReportHandler interface {
	GetSalaryReport(w http.ResponseWriter, r *http.Request)
	ExportSalaryReport(w http.ResponseWriter, r *http.Request)
	GetTotalSalary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewReportHandler(salaryService salary.SalaryService) ReportHandler {
	return &reportHandlerImpl{
		salaryService: salaryService,
	}
}

// reportRequest reads optional month and year query parameters. Only an
// absent parameter falls back to the current period.
func reportRequest(r *http.Request) (salary.ReportRequest, error) {
	query := r.URL.Query()
	month, err := intParam("month", query.Get("month"), true)
	if err != nil {
		return salary.ReportRequest{}, err
	}
	year, err := intParam("year", query.Get("year"), true)
	if err != nil {
		return salary.ReportRequest{}, err
	}
	if (query.Has("month") && month == 0) || (query.Has("year") && year == 0) {
		return salary.ReportRequest{}, salary.ErrInvalidPeriod
	}
	return salary.ReportRequest{Month: month, Year: year}, nil
}

// GetSalaryReport handles GET /salary-report
func (h *reportHandlerImpl) GetSalaryReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportSalaryReport handles GET /salary-report/export
func (h *reportHandlerImpl) ExportSalaryReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Render fully before writing headers so a failure can still produce JSON
	var buf bytes.Buffer
	if err := export.WriteSalaryReport(&buf, result); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.SalaryReportFilename(result)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type totalSalaryResponse struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	TotalSalary string `json:"total_salary"`
}

// GetTotalSalary handles GET /total-salary
func (h *reportHandlerImpl) GetTotalSalary(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, totalSalaryResponse{
		Month:       result.Month,
		Year:        result.Year,
		TotalSalary: result.TotalSpent.StringFixed(2),
	})
}
