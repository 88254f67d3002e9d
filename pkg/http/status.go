package xhttp

import "github.com/valyala/fasthttp"

const (
	StatusOK                  = fasthttp.StatusOK
	StatusCreated             = fasthttp.StatusCreated
	StatusNoContent           = fasthttp.StatusNoContent
	StatusBadRequest          = fasthttp.StatusBadRequest
	StatusUnauthorized        = fasthttp.StatusUnauthorized
	StatusForbidden           = fasthttp.StatusForbidden
	StatusNotFound            = fasthttp.StatusNotFound
	StatusConflict            = fasthttp.StatusConflict
	StatusRequestTimeout      = fasthttp.StatusRequestTimeout
	StatusUnprocessableEntity = fasthttp.StatusUnprocessableEntity
	StatusInternalServerError = fasthttp.StatusInternalServerError
	StatusServiceUnavailable  = fasthttp.StatusServiceUnavailable
)

// StatusText returns the canonical reason phrase for a status code.
func StatusText(code int) string {
	return fasthttp.StatusMessage(code)
}
