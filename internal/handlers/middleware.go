package handlers

import (
	"strings"
	"time"

	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
	"github.com/tdnguyen/debt-ledger/pkg/prom"
)

// openPaths are reachable without a session.
var openPaths = []string{
	"/api/v1/auth/login",
	"/api/v1/auth/recovery",
	"/health",
	"/metrics",
}

// AuthMiddleware rejects requests without a live session token. The token
// comes from the auth cookie or a bearer header.
func AuthMiddleware(sessions SessionService) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			if isOpenPath(string(ctx.Path())) {
				next(ctx)
				return
			}
			if err := sessions.Verify(requestToken(ctx)); err != nil {
				writeError(ctx, xhttp.StatusUnauthorized, "authentication required")
				return
			}
			next(ctx)
		}
	}
}

// MetricsMiddleware records per-request durations by method and status.
func MetricsMiddleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		prom.ObserveHTTPRequest(string(ctx.Method()), ctx.Response.StatusCode(), time.Since(start).Seconds())
	}
}

func isOpenPath(p string) bool {
	for _, op := range openPaths {
		if p == op {
			return true
		}
	}
	return false
}

func requestToken(ctx *xhttp.RequestCtx) string {
	if v := ctx.Request.Header.Cookie(authCookieName); len(v) > 0 {
		return string(v)
	}
	if v := ctx.Request.Header.Peek("Authorization"); len(v) > 0 {
		s := string(v)
		if strings.HasPrefix(s, "Bearer ") {
			return strings.TrimPrefix(s, "Bearer ")
		}
	}
	return ""
}
