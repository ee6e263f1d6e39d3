package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/handler/http/middleware"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/jwt"
)

type RouterConfig struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Salary     SalaryHandler
	Staff      StaffHandler
	Report     ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			// Self or admin, subject checked against the body
			r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).Post("/check-in", h.Attendance.CheckIn)
			r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).Post("/check-out", h.Attendance.CheckOut)

			// Self or admin, subject taken from the URL
			r.Group(func(r chi.Router) {
				r.Use(middleware.SelfOrAdmin("user_id"))
				r.Get("/attendance/{user_id}", h.Attendance.GetUserAttendance)
				r.Get("/salary/{user_id}", h.Salary.GetLatest)
				r.Get("/profile/{user_id}", h.Staff.GetProfile)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.With(middleware.RequirePermission(user.PermissionSalaryCalculate)).Get("/calculate/{user_id}/{year}/{month}", h.Salary.Calculate)
				r.With(middleware.RequirePermission(user.PermissionSalaryCalculate)).Post("/calculate-salary", h.Salary.CalculateAll)

				r.With(middleware.RequirePermission(user.PermissionStaffManage)).Post("/add-staff", h.Staff.Create)
				r.With(middleware.RequirePermission(user.PermissionStaffManage)).Get("/staff", h.Staff.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/salary-report", h.Report.GetSalaryReport)
					r.Get("/salary-report/export", h.Report.ExportSalaryReport)
					r.Get("/total-salary", h.Report.GetTotalSalary)
				})
			})
		})
	})

	return r
}
