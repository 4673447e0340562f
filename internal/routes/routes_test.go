package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/handlers"
	"kycdesk/internal/metrics"
	"kycdesk/internal/models"
	"kycdesk/internal/repositories/cache"
	"kycdesk/internal/services/auth"
	"kycdesk/internal/services/kyc"
	"kycdesk/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct{ mock.Mock }
type MockKYCService struct{ mock.Mock }
type MockTransactionService struct{ mock.Mock }
type MockAuditService struct{ mock.Mock }

var (
	globalAdmin = models.NewPrincipal(uuid.New(), models.RoleGlobalAdmin, models.RegionGlobal)
	euAdmin     = models.NewPrincipal(uuid.New(), models.RoleRegionalAdmin, models.RegionEU)
	naPartner   = models.NewPrincipal(uuid.New(), models.RoleSendingPartner, models.RegionNA)
)

type fixture struct {
	app   *fiber.App
	auth  *MockAuthService
	kyc   *MockKYCService
	tx    *MockTransactionService
	audit *MockAuditService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithThrottle(t, Throttle{Max: 10, Window: 15 * time.Minute})
}

func newFixtureWithThrottle(t *testing.T, throttle Throttle) *fixture {
	t.Helper()
	f := &fixture{
		app:   fiber.New(),
		auth:  new(MockAuthService),
		kyc:   new(MockKYCService),
		tx:    new(MockTransactionService),
		audit: new(MockAuditService),
	}
	for token, p := range map[string]models.Principal{"global": globalAdmin, "eu": euAdmin, "partner": naPartner} {
		f.auth.On("Authenticate", mock.Anything, token).Return(p, nil).Maybe()
	}
	f.auth.On("Authenticate", mock.Anything, mock.Anything).Return(models.Principal{}, apperrors.ErrInvalidToken).Maybe()

	reg := prometheus.NewRegistry()
	SetupRoutes(f.app, Dependencies{
		Auth:         f.auth,
		KYC:          f.kyc,
		Transactions: f.tx,
		Audit:        f.audit,
		Health:       handlers.NewHealthHandler(map[string]handlers.Check{"database": func(context.Context) error { return nil }}),
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
		Throttle:     throttle,
	})
	return f
}

func (f *fixture) do(t *testing.T, method, target, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func TestAuthRoutes(t *testing.T) {
	t.Run("login returns the token payload", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, auth.LoginRequest{Email: "eu@kycdesk.io", Password: "password123"}).
			Return(&auth.LoginResult{AccessToken: "signed", Role: models.RoleRegionalAdmin, Region: "EU"}, nil)

		resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"eu@kycdesk.io","password":"password123"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "signed", body["accessToken"])
		assert.Equal(t, "regional_admin", body["role"])
		assert.Equal(t, "EU", body["region"])
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

		resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"eu@kycdesk.io","password":"nope-nope"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body["message"])
	})

	t.Run("eleventh attempt in the window is throttled", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

		for i := 0; i < 10; i++ {
			resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.io","password":"xxxxxx"}`)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		}
		resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.io","password":"xxxxxx"}`)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, apperrors.ErrTooManyAttempts.Message, body["message"])
	})

	t.Run("throttle holds while redis is unreachable", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		f := newFixtureWithThrottle(t, Throttle{
			Max:     10,
			Window:  15 * time.Minute,
			Storage: cache.NewLimiterStorage(client),
		})
		f.auth.On("Me", mock.Anything, euAdmin.UserID).Return(&models.User{ID: euAdmin.UserID}, nil)

		for i := 0; i < 10; i++ {
			resp, _ := f.do(t, http.MethodGet, "/api/auth/me", "eu", "")
			require.Equal(t, http.StatusOK, resp.StatusCode, "attempt %d", i+1)
		}
		resp, body := f.do(t, http.MethodGet, "/api/auth/me", "eu", "")
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, apperrors.ErrTooManyAttempts.Message, body["message"])
	})

	t.Run("me requires a token", func(t *testing.T) {
		f := newFixture(t)
		resp, body := f.do(t, http.MethodGet, "/api/auth/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No token provided", body["message"])
	})
}

func TestKYCRoutes(t *testing.T) {
	t.Run("invalid token is 401", func(t *testing.T) {
		f := newFixture(t)
		resp, body := f.do(t, http.MethodGet, "/api/kyc", "forged", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", body["message"])
	})

	t.Run("query parameters and principal reach the service", func(t *testing.T) {
		f := newFixture(t)
		f.kyc.On("List", mock.Anything, euAdmin, "NA", "pending", "").Return([]models.KYCCaseView{}, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/kyc?region=NA&status=pending", "eu", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		f.kyc.AssertExpectations(t)
	})

	t.Run("partners cannot transition cases", func(t *testing.T) {
		f := newFixture(t)
		resp, body := f.do(t, http.MethodPatch, "/api/kyc/"+uuid.NewString(), "partner", `{"action":"approve"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Insufficient permissions", body["message"])
		f.kyc.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("partners cannot add notes", func(t *testing.T) {
		f := newFixture(t)
		resp, _ := f.do(t, http.MethodPost, "/api/kyc/"+uuid.NewString()+"/note", "partner", `{"content":"x"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid action is 400", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()
		f.kyc.On("Transition", mock.Anything, euAdmin, id, kyc.TransitionRequest{Action: "escalate"}).
			Return(models.KYCStatus(""), apperrors.ErrInvalidAction)

		resp, body := f.do(t, http.MethodPatch, "/api/kyc/"+id, "eu", `{"action":"escalate"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid action", body["message"])
	})

	t.Run("approve answers with the new status", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()
		f.kyc.On("Transition", mock.Anything, globalAdmin, id, kyc.TransitionRequest{Action: "approve", Reason: "ok"}).
			Return(models.KYCStatusApproved, nil)

		resp, body := f.do(t, http.MethodPatch, "/api/kyc/"+id, "global", `{"action":"approve","reason":"ok"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "approved", body["status"])
	})

	t.Run("unknown case is 404", func(t *testing.T) {
		f := newFixture(t)
		f.kyc.On("Get", mock.Anything, "missing").Return(nil, apperrors.ErrCaseNotFound)

		resp, body := f.do(t, http.MethodGet, "/api/kyc/missing", "partner", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "KYC case not found", body["message"])
	})

	t.Run("unexpected failure hides detail", func(t *testing.T) {
		f := newFixture(t)
		f.kyc.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.Internal(errors.New("pq: relation does not exist")))

		resp, body := f.do(t, http.MethodGet, "/api/kyc", "global", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", body["message"])
	})
}

func TestTransactionRoutes(t *testing.T) {
	t.Run("stats is not captured by the list route", func(t *testing.T) {
		f := newFixture(t)
		f.tx.On("Stats", mock.Anything, naPartner, "EU").Return(&transaction.Stats{LatestTransactions: []models.TransactionView{}}, nil)

		resp, body := f.do(t, http.MethodGet, "/api/transactions/stats?region=EU", "partner", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(0), body["successRate"])
		f.tx.AssertExpectations(t)
	})

	t.Run("create stub acknowledges", func(t *testing.T) {
		f := newFixture(t)
		f.tx.On("Create", mock.Anything, naPartner, mock.Anything).Return(nil)

		resp, body := f.do(t, http.MethodPost, "/api/transactions", "partner",
			`{"sender":"`+uuid.NewString()+`","receiver":"`+uuid.NewString()+`","amount":12.5,"currency":"USD"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Transaction created", body["message"])
	})
}

func TestAuditRoutes(t *testing.T) {
	f := newFixture(t)
	f.audit.On("List", mock.Anything, naPartner, "", "").Return(nil, apperrors.ErrInsufficientRole)

	resp, _ := f.do(t, http.MethodGet, "/api/audit-logs", "partner", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRatesRoute(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/rates?from=USD&to=USDC", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["rate"])

	resp, body = f.do(t, http.MethodGet, "/api/rates?from=USD&to=EUR", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unsupported currency pair", body["message"])
}

func TestOperationalRoutes(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(mresp.Body)
	assert.Equal(t, http.StatusOK, mresp.StatusCode)
	assert.Contains(t, string(raw), "kycdesk_http_requests_total")
}

// Implement auth.Service
func (m *MockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.Principal), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Implement kyc.Service
func (m *MockKYCService) List(ctx context.Context, p models.Principal, region, status, term string) ([]models.KYCCaseView, error) {
	args := m.Called(ctx, p, region, status, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.KYCCaseView), args.Error(1)
}

func (m *MockKYCService) Get(ctx context.Context, id string) (*models.KYCCaseDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KYCCaseDetail), args.Error(1)
}

func (m *MockKYCService) Transition(ctx context.Context, p models.Principal, id string, req kyc.TransitionRequest) (models.KYCStatus, error) {
	args := m.Called(ctx, p, id, req)
	return args.Get(0).(models.KYCStatus), args.Error(1)
}

func (m *MockKYCService) AddNote(ctx context.Context, p models.Principal, id string, req kyc.NoteRequest) error {
	return m.Called(ctx, p, id, req).Error(0)
}

// Implement transaction.Service
func (m *MockTransactionService) List(ctx context.Context, p models.Principal, region, status, term string) ([]models.TransactionView, error) {
	args := m.Called(ctx, p, region, status, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionView), args.Error(1)
}

func (m *MockTransactionService) Stats(ctx context.Context, p models.Principal, region string) (*transaction.Stats, error) {
	args := m.Called(ctx, p, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Stats), args.Error(1)
}

func (m *MockTransactionService) Create(ctx context.Context, p models.Principal, req transaction.CreateRequest) error {
	return m.Called(ctx, p, req).Error(0)
}

// Implement audit.Service
func (m *MockAuditService) Record(ctx context.Context, actor uuid.UUID, region, action string, status models.AuditStatus, details string) {
	m.Called(ctx, actor, region, action, status, details)
}

func (m *MockAuditService) List(ctx context.Context, p models.Principal, status, term string) ([]models.AuditLogView, error) {
	args := m.Called(ctx, p, status, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogView), args.Error(1)
}
