package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"resource-hub-go/internal/middleware"
	"resource-hub-go/internal/service"
	"resource-hub-go/pkg/log"
)

const msgInternal = "Error interno del servidor"

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings 将业务错误映射为 HTTP 状态码和返回给客户端的信息。
var errorMappings = []errorMapping{
	{service.ErrMissingRequiredField, http.StatusBadRequest, "email y password son requeridos"},
	{service.ErrMissingCategoryName, http.StatusBadRequest, "name es requerido"},
	{service.ErrMissingFile, http.StatusBadRequest, "Falta el archivo (field: file)"},
	{service.ErrInvalidCategoryID, http.StatusBadRequest, "category_id debe ser un número"},
	{service.ErrCategoryNotFound, http.StatusBadRequest, "category_id no existe"},
	{service.ErrEmptyQuery, http.StatusBadRequest, "El parámetro q es requerido"},
	{service.ErrDuplicateEmail, http.StatusConflict, "El email ya está registrado."},
	{service.ErrNotFound, http.StatusNotFound, "Recurso no encontrado"},
	{service.ErrFileNotFound, http.StatusNotFound, "Archivo no existe"},
}

// errorResponse returns the status and client message for err.
// Anything unrecognized is an internal error whose details stay in the log.
func errorResponse(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// writeError 统一输出 {"error": "..."} 错误响应。
func writeError(c *gin.Context, op string, err error) {
	status, msg := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s failed: request_id=%s err=%v", op, c.GetString(middleware.RequestIDKey), err)
	} else {
		log.Warnf("%s rejected: %v", op, err)
	}
	c.JSON(status, gin.H{"error": msg})
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// contentDisposition builds an inline or attachment header that keeps the original filename.
// Non-ASCII names get an ASCII fallback plus an RFC 5987 filename* parameter.
func contentDisposition(disposition, filename string) string {
	if isASCII(filename) {
		return disposition + `; filename="` + quoteEscaper.Replace(filename) + `"`
	}
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '_'
		}
		return r
	}, filename)
	return disposition + `; filename="` + quoteEscaper.Replace(fallback) + `"; filename*=UTF-8''` + url.PathEscape(filename)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
