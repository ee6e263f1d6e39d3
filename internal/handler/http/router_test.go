package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/export"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/jwt"
	"github.com/pixdot/hr-payroll-backend/internal/repository/memory"
	attendanceService "github.com/pixdot/hr-payroll-backend/internal/service/attendance"
	authService "github.com/pixdot/hr-payroll-backend/internal/service/auth"
	salaryService "github.com/pixdot/hr-payroll-backend/internal/service/salary"
	staffService "github.com/pixdot/hr-payroll-backend/internal/service/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPassword = "Passw0"
)

type testServer struct {
	router  *chi.Mux
	jwt     jwt.Service
	store   *memory.Store
	adminID string
	staffID string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)

	rules := salary.DefaultRules()
	staffSvc := staffService.NewStaffService(store.Transactor(), store.Users(), staffService.DefaultPasswordLength)
	staffSvc.SetBcryptCost(bcrypt.MinCost)
	salarySvc := salaryService.NewSalaryService(store.Transactor(), store.Salaries(), store.Attendance(), store.Users(), salaryService.NewEngine(rules), time.Local)

	router := NewRouter(RouterConfig{}, jwtService, Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(store.Users(), jwtService)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store.Transactor(), store.Attendance(), store.Users(), attendance.DefaultPolicy(), time.Local)),
		Salary:     NewSalaryHandler(salarySvc),
		Staff:      NewStaffHandler(staffSvc),
		Report:     NewReportHandler(salarySvc),
	})

	return &testServer{
		router:  router,
		jwt:     jwtService,
		store:   store,
		adminID: createHandlerTestUser(t, store, "admin@example.com", user.RoleAdmin),
		staffID: createHandlerTestUser(t, store, "staff@example.com", user.RoleUser),
	}
}

func createHandlerTestUser(t *testing.T, store *memory.Store, email string, role user.Role) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := store.Users().Create(context.Background(), user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         email,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	})
	require.NoError(t, err)
	return created.ID
}

func (s *testServer) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(userID, "x@example.com", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

// ===== LOGIN =====

func TestLoginHandler_Success(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": handlerTestPassword,
	})

	require.Equal(t, http.StatusOK, rr.Code)
	env := decode(t, rr)
	assert.True(t, env.Success)

	var data struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, srv.staffID, data.User.ID)
	assert.Equal(t, "user", data.User.Role)
	assert.NotEmpty(t, data.AccessToken)

	// The issued token opens protected routes
	rr = srv.do(t, http.MethodGet, "/api/v1/profile/"+srv.staffID, data.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginHandler_EmailCaseAndSpacing(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "  Staff@Example.com ",
		"password": handlerTestPassword,
	})

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginHandler_UniformUnauthorized(t *testing.T) {
	srv := newTestServer(t)

	wrong := srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "nope-nope",
	})
	unknown := srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": handlerTestPassword,
	})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestLoginHandler_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	missing := srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"email": "staff@example.com"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	env := decode(t, missing)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "password")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ===== AUTHENTICATION AND AUTHORIZATION =====

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/staff", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/staff", "garbage.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	other := jwt.NewJWTService("another-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken(srv.adminID, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	rr = srv.do(t, http.MethodGet, "/api/v1/staff", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_AdminRoutesRejectStaff(t *testing.T) {
	srv := newTestServer(t)
	staffToken := srv.token(t, srv.staffID, user.RoleUser)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/staff"},
		{http.MethodPost, "/api/v1/add-staff"},
		{http.MethodGet, "/api/v1/calculate/" + srv.staffID + "/2025/4"},
		{http.MethodPost, "/api/v1/calculate-salary"},
		{http.MethodGet, "/api/v1/salary-report"},
		{http.MethodGet, "/api/v1/salary-report/export"},
		{http.MethodGet, "/api/v1/total-salary"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rr := srv.do(t, p.method, p.path, staffToken, nil)
			assert.Equal(t, http.StatusForbidden, rr.Code)
		})
	}
}

func TestRouter_SelfOrAdmin(t *testing.T) {
	srv := newTestServer(t)
	staffToken := srv.token(t, srv.staffID, user.RoleUser)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	for _, prefix := range []string{"/api/v1/attendance/", "/api/v1/profile/"} {
		own := srv.do(t, http.MethodGet, prefix+srv.staffID, staffToken, nil)
		assert.Equal(t, http.StatusOK, own.Code, prefix)

		other := srv.do(t, http.MethodGet, prefix+srv.adminID, staffToken, nil)
		assert.Equal(t, http.StatusForbidden, other.Code, prefix)

		byAdmin := srv.do(t, http.MethodGet, prefix+srv.staffID, adminToken, nil)
		assert.Equal(t, http.StatusOK, byAdmin.Code, prefix)
	}
}

// ===== ATTENDANCE =====

func TestAttendanceHandler_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, srv.staffID, user.RoleUser)
	body := map[string]string{"user_id": srv.staffID}

	rr := srv.do(t, http.MethodPost, "/api/v1/check-out", token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "check-out before check-in")

	rr = srv.do(t, http.MethodPost, "/api/v1/check-in", token, body)
	require.Equal(t, http.StatusOK, rr.Code)
	var checkIn attendance.CheckInResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &checkIn))
	assert.Equal(t, srv.staffID, checkIn.UserID)
	assert.GreaterOrEqual(t, checkIn.LateMinutes, 0)

	rr = srv.do(t, http.MethodPost, "/api/v1/check-in", token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "second check-in")

	rr = srv.do(t, http.MethodPost, "/api/v1/check-out", token, body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/check-out", token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "second check-out")

	rr = srv.do(t, http.MethodGet, "/api/v1/attendance/"+srv.staffID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env := decode(t, rr)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)
}

func TestAttendanceHandler_CheckInForOtherUser(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]string{"user_id": srv.adminID}

	rr := srv.do(t, http.MethodPost, "/api/v1/check-in", srv.token(t, srv.staffID, user.RoleUser), body)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Admins may record for anyone
	rr = srv.do(t, http.MethodPost, "/api/v1/check-in", srv.token(t, srv.adminID, user.RoleAdmin), map[string]string{"user_id": srv.staffID})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAttendanceHandler_InvalidUserID(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	rr := srv.do(t, http.MethodPost, "/api/v1/check-in", adminToken, map[string]string{"user_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/check-in", adminToken, map[string]string{"user_id": uuid.Must(uuid.NewV7()).String()})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ===== SALARY =====

func TestSalaryHandler_CalculateAndFetch(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)
	staffToken := srv.token(t, srv.staffID, user.RoleUser)

	rr := srv.do(t, http.MethodGet, "/api/v1/salary/"+srv.staffID, staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "no breakdown yet")

	rr = srv.do(t, http.MethodGet, "/api/v1/calculate/"+srv.staffID+"/2025/4", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/salary/"+srv.staffID, staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var breakdown salary.BreakdownResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &breakdown))
	assert.Equal(t, 4, breakdown.Month)
	assert.Equal(t, 30, breakdown.DaysInMonth)
	assert.True(t, breakdown.FinalSalary.IsZero())
}

func TestSalaryHandler_CalculateBadPeriod(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	rr := srv.do(t, http.MethodGet, "/api/v1/calculate/"+srv.staffID+"/2025/13", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/calculate/"+srv.staffID+"/2025/april", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/calculate-salary", adminToken, map[string]int{"month": 0, "year": 2025})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSalaryHandler_CalculateAll(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	rr := srv.do(t, http.MethodPost, "/api/v1/calculate-salary", adminToken, map[string]int{"month": 4, "year": 2025})
	require.Equal(t, http.StatusOK, rr.Code)

	var result salary.BulkCalculationResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &result))
	assert.Equal(t, 1, result.Calculated)
}

// ===== STAFF =====

func TestStaffHandler_Create(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)
	body := map[string]interface{}{
		"name":           "Budi",
		"email":          "budi@example.com",
		"monthly_salary": "30000",
	}

	rr := srv.do(t, http.MethodPost, "/api/v1/add-staff", adminToken, body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		ID                string `json:"id"`
		GeneratedPassword string `json:"generated_password"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &created))
	assert.Len(t, created.GeneratedPassword, staffService.DefaultPasswordLength)

	// The generated password works at login
	rr = srv.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "budi@example.com",
		"password": created.GeneratedPassword,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/add-staff", adminToken, body)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/add-staff", adminToken, map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/staff", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	env := decode(t, rr)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalItems)
}

// ===== REPORTS =====

func TestReportHandler_Endpoints(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	rr := srv.do(t, http.MethodPost, "/api/v1/calculate-salary", adminToken, map[string]int{"month": 2, "year": 2024})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/salary-report?month=2&year=2024", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var report salary.ReportResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &report))
	assert.Len(t, report.Report, 1)
	assert.Equal(t, 2, report.Month)

	rr = srv.do(t, http.MethodGet, "/api/v1/total-salary?month=2&year=2024", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total_salary":"0.00"`)

	rr = srv.do(t, http.MethodGet, "/api/v1/salary-report/export?month=2&year=2024", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypeXLSX, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rr.Body.Len())

	rr = srv.do(t, http.MethodGet, "/api/v1/salary-report?month=abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReportHandler_ZeroPeriodRejected(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.token(t, srv.adminID, user.RoleAdmin)

	for _, query := range []string{"month=0", "year=0", "month=0&year=2024", "month=3&year=0"} {
		for _, path := range []string{"/api/v1/salary-report", "/api/v1/total-salary", "/api/v1/salary-report/export"} {
			rr := srv.do(t, http.MethodGet, path+"?"+query, adminToken, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "%s?%s", path, query)
		}
	}

	rr := srv.do(t, http.MethodGet, "/api/v1/salary-report", adminToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
