package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName はプロジェクトを束ねるセッションクッキー名
const CookieName = "genba_session"

const cookieMaxAge = 365 * 24 * time.Hour

type contextKey string

const projectIDKey contextKey = "project_id"

// ProjectIDFromContext は context からプロジェクトIDを取得する
func ProjectIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(projectIDKey).(string)
	return v, ok && v != ""
}

// WithProjectID は context にプロジェクトIDをセットする
func WithProjectID(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectIDKey, projectID)
}

// Middleware はセッションクッキーからプロジェクトIDを取り出して context にセットする。
// クッキーが無い、または署名が不正な場合は新しいプロジェクトIDを発行してクッキーを返す。
func Middleware(secret []byte, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var projectID string
			if cookie, err := r.Cookie(CookieName); err == nil {
				if id, err := VerifyToken(cookie.Value, secret); err == nil {
					projectID = id
				} else {
					slog.Warn("session cookie rejected", "error", err)
				}
			}
			if projectID == "" {
				projectID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    CreateToken(projectID, secret),
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithProjectID(r.Context(), projectID)))
		})
	}
}
