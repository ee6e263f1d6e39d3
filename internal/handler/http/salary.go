package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/response"
)

type SalaryHandler interface {
	GetLatest(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateAll(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// GetLatest handles GET /salary/{user_id}
func (h *salaryHandlerImpl) GetLatest(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetLatest(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calculate handles GET /calculate/{user_id}/{year}/{month}
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := intParam("year", chi.URLParam(r, "year"), false)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, err := intParam("month", chi.URLParam(r, "month"), false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Calculate(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary calculated", result)
}

// CalculateAll handles POST /calculate-salary
func (h *salaryHandlerImpl) CalculateAll(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CalculateAll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.CalculateAll(r.Context(), req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaries calculated for all staff", result)
}
