package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "chromapick_session"
	cookieTTL  = 30 * 24 * time.Hour
)

type sessionContextKey struct{}

func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

// IDFromContext returns the picker session for the request, or "".
func IDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, ok := ctx.Value(sessionContextKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// FromRequest reads the session cookie. Values that are not UUIDs are ignored.
func FromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(cookie.Value)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// Ensure returns the request's session, issuing a new cookie when it has none.
func Ensure(w http.ResponseWriter, r *http.Request, secure bool) string {
	if id, ok := FromRequest(r); ok {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
		MaxAge:   int(cookieTTL.Seconds()),
	})
	return id
}
