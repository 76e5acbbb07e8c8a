package server

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/niprobin/digging/internal/shared"
)

// SessionCookie is the cookie carrying the dashboard session token.
const SessionCookie = "cd_session"

const (
	sessionTTL  = 12 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

// SessionStore keeps issued session tokens in memory. Tokens are opaque ids;
// restarting the server logs everyone out, which is acceptable for a single
// user dashboard.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Issue mints a new session token. Remembered sessions last thirty days,
// regular ones twelve hours.
func (s *SessionStore) Issue(remember bool) (token string, ttl time.Duration) {
	ttl = sessionTTL
	if remember {
		ttl = rememberTTL
	}

	token = shared.GenerateID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = s.now().Add(ttl)
	return token, ttl
}

// Valid reports whether the token belongs to a live session. Expired tokens
// are pruned as they are seen.
func (s *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Revoke forgets a session token.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// sessionToken extracts the session cookie value from a request.
func sessionToken(req *http.Request) string {
	cookie, err := req.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// hasSession reports whether the request carries a live session.
func (s *SessionStore) hasSession(req *http.Request) bool {
	return s.Valid(sessionToken(req))
}

// sessionCookie builds the session cookie. A non-positive maxAge clears it.
func sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge / time.Second)
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}

// isAssetPath reports whether a request path is a static asset, exempt from
// the session gate.
func isAssetPath(p string) bool {
	if strings.HasPrefix(p, "/static/") || p == "/favicon.ico" {
		return true
	}
	switch path.Ext(p) {
	case ".css", ".js", ".png", ".svg", ".ico", ".woff", ".woff2":
		return true
	}
	return false
}

// Gate requires a live session on every page route. API routes and assets
// pass through; unauthenticated page requests bounce to the login form with
// the original destination preserved, and a logged-in visit to the login form
// bounces back out.
func Gate(sessions *SessionStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			p := req.URL.Path

			if strings.HasPrefix(p, "/api/") || isAssetPath(p) {
				next.ServeHTTP(w, req)
				return
			}

			authed := sessions.hasSession(req)

			if p == "/login" {
				if authed {
					target := req.URL.Query().Get("redirect")
					if target == "" || !strings.HasPrefix(target, "/") {
						target = "/"
					}
					http.Redirect(w, req, target, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, req)
				return
			}

			if !authed {
				destination := req.URL.Path
				if req.URL.RawQuery != "" {
					destination += "?" + req.URL.RawQuery
				}
				http.Redirect(w, req, "/login?redirect="+url.QueryEscape(destination), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}
