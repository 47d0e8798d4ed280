// Package middleware HTTP middleware: аутентификация и метрики
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
)

// HeaderUserEmail заголовок с идентификатором пользователя.
// Заголовок выставляется доверенным API gateway после аутентификации.
const HeaderUserEmail = "X-User-Email"

type ctxKey int

const userEmailKey ctxKey = iota

// Auth требует заголовок X-User-Email и кладет его значение в контекст.
// Email нормализуется в lowercase: идентичность пользователя
// регистронезависима во всем сервисе.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserEmail)))
		if email == "" || !strings.Contains(email, "@") {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized,
				"missing or invalid X-User-Email header")
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserEmail возвращает email аутентифицированного пользователя из контекста
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}
