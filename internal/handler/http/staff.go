package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pixdot/hr-payroll-backend/internal/domain/staff"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/response"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &staffHandlerImpl{
		staffService: staffService,
	}
}

// Create handles POST /add-staff
func (h *staffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.staffService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff created. Share the generated password now, it cannot be shown again", result)
}

// List handles GET /staff
func (h *staffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, result, len(result))
}

// GetProfile handles GET /profile/{user_id}
func (h *staffHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.staffService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
