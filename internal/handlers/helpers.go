package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/tdnguyen/debt-ledger/internal/model"
	"github.com/tdnguyen/debt-ledger/internal/services"
	xhttp "github.com/tdnguyen/debt-ledger/pkg/http"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError translates service errors into status codes so every
// handler maps failures the same way.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	writeError(ctx, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, model.ErrInvalidKind),
		errors.Is(err, model.ErrInvalidAmount):
		return xhttp.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionNotFound):
		return xhttp.StatusUnauthorized
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		return xhttp.StatusNotFound
	case errors.Is(err, services.ErrDuplicatePhone):
		return xhttp.StatusConflict
	default:
		return xhttp.StatusInternalServerError
	}
}

// pathID reads a positive integer path segment registered as {name}.
func pathID(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) int {
	if v := query(ctx, key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func parseDate(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
