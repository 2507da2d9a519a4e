package visitor

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const idKey contextKey = "visitor_id"

// cookieMaxAge は訪問者クッキーの有効期間（1年）
const cookieMaxAge = 365 * 24 * 60 * 60

// FromContext は context から訪問者 ID を取得する
func FromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(idKey).(string)
	return v, ok
}

// WithID は context に訪問者 ID をセットする
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// Middleware はクッキーから訪問者を特定する。クッキーが無い・改ざんされている場合は
// 新しい訪問者 ID とクッキーを発行する（リクエストは拒否しない）
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(CookieName); err == nil {
				id, _ = VerifyToken(cookie.Value, secret)
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    CreateToken(id, secret),
					Path:     "/",
					MaxAge:   cookieMaxAge,
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// Fixed は全リクエストに同じ訪問者をセットするミドルウェア（テスト・開発用）
func Fixed(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}
