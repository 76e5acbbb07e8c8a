package server

import (
	"crypto/subtle"
	"html/template"
	"net/http"
	"time"

	"github.com/niprobin/digging/internal/shared"
)

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Curated Digging</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .card { text-align: center; background: white; padding: 2rem;
                border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { margin: 0 0 1rem 0; }
        input[type=password] { padding: 0.5rem; width: 14rem; }
        button { padding: 0.5rem 1rem; margin-top: 0.75rem; }
        label { display: block; margin-top: 0.5rem; color: #666; font-size: 0.875rem; }
        .error { color: #c0392b; margin-top: 0.75rem; }
    </style>
</head>
<body>
    <div class="card">
        <h1>Curated Digging</h1>
        <form id="login">
            <input type="password" name="passcode" placeholder="Passcode" autofocus>
            <label><input type="checkbox" name="remember"> Stay signed in</label>
            <button type="submit">Enter</button>
            <p class="error" id="error" hidden></p>
        </form>
    </div>
    <script>
        const redirect = new URLSearchParams(location.search).get("redirect") || "/";
        document.getElementById("login").addEventListener("submit", async (event) => {
            event.preventDefault();
            const form = event.target;
            const resp = await fetch("/api/login", {
                method: "POST",
                headers: {"Content-Type": "application/json"},
                body: JSON.stringify({
                    passcode: form.passcode.value,
                    remember: form.remember.checked,
                }),
            });
            if (resp.ok) {
                location.assign(redirect.startsWith("/") ? redirect : "/");
                return;
            }
            const body = await resp.json().catch(() => ({}));
            const error = document.getElementById("error");
            error.textContent = body.error || "Login failed";
            error.hidden = false;
        });
    </script>
</body>
</html>
`))

var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Curated Digging</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               max-width: 40rem; margin: 3rem auto; color: #222; }
        h1 { margin-bottom: 0.25rem; }
        p { color: #666; }
        ul { line-height: 1.8; }
    </style>
</head>
<body>
    <h1>Curated Digging</h1>
    <p>{{.Tracks}} tracks and {{.Albums}} albums waiting in the inbox.</p>
    <ul>
        <li><a href="/api/tracks">Track inbox</a></li>
        <li><a href="/api/albums">Album inbox</a></li>
        <li><a href="/api/history">Like history</a></li>
        <li><a href="/api/curators">Curators</a></li>
    </ul>
</body>
</html>
`))

func (a *App) handleLoginPage(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginPage.Execute(w, nil); err != nil {
		a.logger.Warn("login page render failed", "error", err)
	}
}

func (a *App) handleIndex(w http.ResponseWriter, req *http.Request) {
	data := struct {
		Tracks int
		Albums int
	}{
		Tracks: len(a.cachedTracks(req)),
		Albums: len(a.cachedAlbums(req)),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, data); err != nil {
		a.logger.Warn("index page render failed", "error", err)
	}
}

func (a *App) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Passcode string `json:"passcode"`
		Remember bool   `json:"remember"`
	}
	if err := decodeBody(req, &body); err != nil || body.Passcode == "" {
		writeError(w, http.StatusBadRequest, shared.ErrMissingPasscode.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.Passcode), []byte(a.cfg.Auth.Passcode)) != 1 {
		a.logger.Warn("rejected login attempt")
		writeError(w, http.StatusUnauthorized, shared.ErrInvalidPasscode.Error())
		return
	}

	token, ttl := a.sessions.Issue(body.Remember)
	http.SetCookie(w, sessionCookie(token, ttl))
	a.logger.Info("session issued", "remember", body.Remember,
		"expires", time.Now().Add(ttl).Format(time.RFC3339))

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handleLogout(w http.ResponseWriter, req *http.Request) {
	if token := sessionToken(req); token != "" {
		a.sessions.Revoke(token)
	}
	http.SetCookie(w, sessionCookie("", 0))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
