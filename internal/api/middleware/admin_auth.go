package middleware

import (
	"net/http"

	"github.com/johntint/booking-service/internal/api/handlers"
)

// AdminKeyHeader заголовок с админским ключом
const AdminKeyHeader = "X-Admin-Key"

// Authorizer проверяет админский ключ
type Authorizer interface {
	Authorize(key string) bool
}

// AuthLogger интерфейс для логирования
type AuthLogger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет заголовок X-Admin-Key
// Ответ 401 намеренно не различает отсутствующий и неверный ключ
func AdminAuth(authorizer Authorizer, log AuthLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(AdminKeyHeader)
			if !authorizer.Authorize(key) {
				log.Warn("AdminAuth: rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondUnauthorized(w, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
