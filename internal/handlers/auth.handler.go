package handlers

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/tdnguyen/debt-ledger/internal/services"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
	"github.com/valyala/fasthttp"
)

const authCookieName = "auth_token"

type SessionService interface {
	Login(password string) (string, error)
	LoginWithRecoveryCode(code string) (string, error)
	Verify(token string) error
	Logout(token string) error
}

type AuthHandler struct {
	svc SessionService
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/auth/login", h.Login)
	e.POST("/auth/recovery", h.LoginWithRecoveryCode)
	e.POST("/auth/logout", h.Logout)
}

func NewAuthHandler(sessionService SessionService) *AuthHandler {
	return &AuthHandler{
		svc: sessionService,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type recoveryRequest struct {
	Code string `json:"code"`
}

type loginResponse struct {
	Token string `json:"token"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	token, err := h.svc.Login(req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	setAuthCookie(ctx, token)
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: token})
}

func (h *AuthHandler) LoginWithRecoveryCode(ctx *xhttp.RequestCtx) {
	var req recoveryRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	token, err := h.svc.LoginWithRecoveryCode(req.Code)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	setAuthCookie(ctx, token)
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: token})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	if err := h.svc.Logout(requestToken(ctx)); err != nil {
		writeServiceError(ctx, err)
		return
	}
	clearAuthCookie(ctx)
	ctx.Response.SetStatusCode(xhttp.StatusNoContent)
}

func setAuthCookie(ctx *xhttp.RequestCtx, token string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(authCookieName)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(time.Now().Add(services.SessionTTL))
	ctx.Response.Header.SetCookie(c)
}

func clearAuthCookie(ctx *xhttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(authCookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)
}
