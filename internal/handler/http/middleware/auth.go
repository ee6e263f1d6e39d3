package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pixdot/hr-payroll-backend/internal/domain/auth"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Subject returns the authenticated user id and role from the verified token
func Subject(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return userID, user.Role(role), nil
}

// AuthorizeSubject allows admins to act on anyone and users only on themselves
func AuthorizeSubject(ctx context.Context, targetUserID string) error {
	userID, role, err := Subject(ctx)
	if err != nil {
		return err
	}
	if role == user.RoleAdmin || userID == targetUserID {
		return nil
	}
	return user.ErrForbiddenSubject
}

// SelfOrAdmin guards routes whose URL carries the target user id
func SelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := AuthorizeSubject(r.Context(), chi.URLParam(r, param)); err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
