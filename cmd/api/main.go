package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/pixdot/hr-payroll-backend/internal/config"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	appHTTP "github.com/pixdot/hr-payroll-backend/internal/handler/http"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/cron"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/jwt"
	"github.com/pixdot/hr-payroll-backend/internal/repository/mysql"
	"github.com/pixdot/hr-payroll-backend/internal/repository/postgresql"
	attendanceService "github.com/pixdot/hr-payroll-backend/internal/service/attendance"
	serviceAuth "github.com/pixdot/hr-payroll-backend/internal/service/auth"
	salaryService "github.com/pixdot/hr-payroll-backend/internal/service/salary"
	staffService "github.com/pixdot/hr-payroll-backend/internal/service/staff"
)

const version = "v1.0.0"

// repositories is the storage port selected by DB_DRIVER
type repositories struct {
	transactor database.Transactor
	users      user.UserRepository
	attendance attendance.AttendanceRepository
	salaries   salary.SalaryRepository
	close      func()
}

func openRepositories(cfg *config.Config) (repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err := database.NewMySQLDB(cfg.DatabaseURL())
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			transactor: mysql.NewTransactor(db),
			users:      mysql.NewUserRepository(db),
			attendance: mysql.NewAttendanceRepository(db),
			salaries:   mysql.NewSalaryRepository(db),
			close:      func() { db.Close() },
		}, nil
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			transactor: postgresql.NewTransactor(db),
			users:      postgresql.NewUserRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			salaries:   postgresql.NewSalaryRepository(db),
			close:      db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-payroll"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	repos, err := openRepositories(cfg)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer repos.close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := serviceAuth.NewAuthService(repos.users, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.transactor,
		repos.attendance,
		repos.users,
		cfg.Attendance,
		cfg.App.Location,
	)
	salarySvc := salaryService.NewSalaryService(
		repos.transactor,
		repos.salaries,
		repos.attendance,
		repos.users,
		salaryService.NewEngine(cfg.Salary),
		cfg.App.Location,
	)
	staffSvc := staffService.NewStaffService(repos.transactor, repos.users, cfg.Staff.PasswordLength)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:             logger,
			CORSAllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Salary:     appHTTP.NewSalaryHandler(salarySvc),
			Staff:      appHTTP.NewStaffHandler(staffSvc),
			Report:     appHTTP.NewReportHandler(salarySvc),
		},
	)

	scheduler := cron.NewScheduler()
	if cfg.App.SalaryJobEnabled {
		cron.NewSalaryJobs(salarySvc, cfg.App.Location).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "db_driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
