package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
)

// userIDParam reads and validates the {user_id} URL parameter
func userIDParam(r *http.Request) (string, error) {
	userID := chi.URLParam(r, "user_id")
	if !validator.IsValidUUID(userID) {
		return "", validator.ValidationErrors{{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		}}
	}
	return userID, nil
}

// intParam parses an integer from a URL or query value. Empty yields 0 when optional.
func intParam(field, value string, optional bool) (int, error) {
	if value == "" && optional {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a number",
		}}
	}
	return n, nil
}
