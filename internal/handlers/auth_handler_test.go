package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdnguyen/debt-ledger/internal/services"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) LoginWithRecoveryCode(code string) (string, error) {
	args := m.Called(code)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Verify(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockSessionService) Logout(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login sets cookie", func(t *testing.T) {
		svc := new(MockSessionService)
		handler := NewAuthHandler(svc)

		svc.On("Login", "letmein").Return("token-abc", nil)

		bodyBytes, _ := json.Marshal(loginRequest{Password: "letmein"})
		ctx := setupTestContext("POST", "/auth/login", bodyBytes)
		handler.Login(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response loginResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "token-abc", response.Token)

		cookie := ctx.Response.Header.PeekCookie(authCookieName)
		assert.Contains(t, string(cookie), "token-abc")
		assert.Contains(t, string(cookie), "HttpOnly")
	})

	t.Run("wrong password maps to 401", func(t *testing.T) {
		svc := new(MockSessionService)
		handler := NewAuthHandler(svc)

		svc.On("Login", "guess").Return("", services.ErrInvalidCredentials)

		bodyBytes, _ := json.Marshal(loginRequest{Password: "guess"})
		ctx := setupTestContext("POST", "/auth/login", bodyBytes)
		handler.Login(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})
}

func TestAuthHandler_Recovery(t *testing.T) {
	svc := new(MockSessionService)
	handler := NewAuthHandler(svc)

	svc.On("LoginWithRecoveryCode", "rescue-1234").Return("token-xyz", nil)

	bodyBytes, _ := json.Marshal(recoveryRequest{Code: "rescue-1234"})
	ctx := setupTestContext("POST", "/auth/recovery", bodyBytes)
	handler.LoginWithRecoveryCode(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockSessionService)
	handler := NewAuthHandler(svc)

	svc.On("Logout", "token-abc").Return(nil)

	ctx := setupTestContext("POST", "/auth/logout", nil)
	ctx.Request.Header.SetCookie(authCookieName, "token-abc")
	handler.Logout(ctx)

	assert.Equal(t, 204, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestAuthMiddleware(t *testing.T) {
	next := func(ctx *xhttp.RequestCtx) {
		ctx.Response.SetStatusCode(200)
	}

	t.Run("open path skips verification", func(t *testing.T) {
		svc := new(MockSessionService)
		mw := AuthMiddleware(svc)(next)

		ctx := setupTestContext("POST", "/api/v1/auth/login", nil)
		mw(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Verify")
	})

	t.Run("missing token rejected", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Verify", "").Return(services.ErrSessionNotFound)
		mw := AuthMiddleware(svc)(next)

		ctx := setupTestContext("GET", "/api/v1/customers", nil)
		mw(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("cookie token accepted", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Verify", "token-abc").Return(nil)
		mw := AuthMiddleware(svc)(next)

		ctx := setupTestContext("GET", "/api/v1/customers", nil)
		ctx.Request.Header.SetCookie(authCookieName, "token-abc")
		mw(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("bearer header accepted", func(t *testing.T) {
		svc := new(MockSessionService)
		svc.On("Verify", "token-abc").Return(nil)
		mw := AuthMiddleware(svc)(next)

		ctx := setupTestContext("GET", "/api/v1/customers", nil)
		ctx.Request.Header.Set("Authorization", "Bearer token-abc")
		mw(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})
}
