package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance attendance.Policy
	Salary     salary.Rules
	Staff      StaffConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Location           *time.Location
	CORSAllowedOrigins []string
	SalaryJobEnabled   bool
}

type StaffConfig struct {
	PasswordLength int
}

func Load() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverPostgres))
	defaultPort := "5432"
	if driver == DriverMySQL {
		defaultPort = "3306"
	}
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", defaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	location := time.Local
	if tz := getEnv("APP_TIMEZONE", ""); tz != "" {
		location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
		}
	}

	salaryJobEnabled, err := strconv.ParseBool(getEnv("SALARY_JOB_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SALARY_JOB_ENABLED: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Location:           location,
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		SalaryJobEnabled:   salaryJobEnabled,
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Attendance thresholds
	policy := attendance.DefaultPolicy()
	if v := getEnv("ATTENDANCE_LATE_THRESHOLD", ""); v != "" {
		if policy.LateThreshold, err = attendance.ParseClockTime(v); err != nil {
			return nil, fmt.Errorf("invalid ATTENDANCE_LATE_THRESHOLD: %w", err)
		}
	}
	if v := getEnv("ATTENDANCE_EARLY_THRESHOLD", ""); v != "" {
		if policy.EarlyThreshold, err = attendance.ParseClockTime(v); err != nil {
			return nil, fmt.Errorf("invalid ATTENDANCE_EARLY_THRESHOLD: %w", err)
		}
	}
	config.Attendance = policy

	// Salary rules
	rules := salary.DefaultRules()
	if rules.SalaryPerDay, err = getEnvDecimal("SALARY_PER_DAY", rules.SalaryPerDay); err != nil {
		return nil, err
	}
	if rules.PaidLeaveDays, err = getEnvInt("SALARY_PAID_LEAVE_DAYS", rules.PaidLeaveDays); err != nil {
		return nil, err
	}
	if rules.PermissionMinutesLimit, err = getEnvInt("SALARY_PERMISSION_MINUTES_LIMIT", rules.PermissionMinutesLimit); err != nil {
		return nil, err
	}
	if rules.LateCutPercent, err = getEnvDecimal("SALARY_LATE_CUT_PERCENT", rules.LateCutPercent); err != nil {
		return nil, err
	}
	if rules.EarlyCutPercent, err = getEnvDecimal("SALARY_EARLY_CUT_PERCENT", rules.EarlyCutPercent); err != nil {
		return nil, err
	}
	if rules.BonusIfNoAbsence, err = getEnvDecimal("SALARY_BONUS_IF_NO_ABSENCE", rules.BonusIfNoAbsence); err != nil {
		return nil, err
	}
	config.Salary = rules

	// Staff administration
	passwordLength, err := getEnvInt("STAFF_PASSWORD_LENGTH", 6)
	if err != nil {
		return nil, err
	}
	config.Staff = StaffConfig{PasswordLength: passwordLength}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	slog.Debug("configuration loaded", "db_driver", config.Database.Driver, "env", config.App.Env, "timezone", location.String())
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverMySQL {
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverMySQL)
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if err := c.Salary.Validate(); err != nil {
		return err
	}
	if c.Staff.PasswordLength < 6 || c.Staff.PasswordLength > 64 {
		return fmt.Errorf("STAFF_PASSWORD_LENGTH must be between 6 and 64")
	}
	return nil
}

// DatabaseURL returns the connection string for the configured driver
func (c *Config) DatabaseURL() string {
	if c.Database.Driver == DriverMySQL {
		return database.MySQLConfig{
			Host:     c.Database.Host,
			Port:     c.Database.Port,
			User:     c.Database.User,
			Password: c.Database.Password,
			Name:     c.Database.Name,
			Location: c.App.Location,
		}.DSN()
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
