package middleware

import (
	"net/http"

	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, role, err := Subject(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
