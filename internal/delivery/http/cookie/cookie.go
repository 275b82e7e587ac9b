// Package cookie reads and writes the cookies the site sets on the browser.
package cookie

import (
	"net/http"
	"time"

	"secretwall/config"

	"github.com/labstack/echo/v4"
)

const (
	// StateCookieName binds an OAuth state to the browser that started the flow.
	StateCookieName = "oauth_state"

	stateTTL = 10 * time.Minute
)

// Jar builds the session and OAuth state cookies from configuration.
type Jar struct {
	sessionName string
	ttl         time.Duration
	secure      bool
	now         func() time.Time
}

// NewJar is the constructor for Jar.
func NewJar(cfg *config.Config) *Jar {
	return &Jar{
		sessionName: cfg.Session.CookieName,
		ttl:         cfg.Session.TTL,
		secure:      cfg.Session.Secure,
		now:         time.Now,
	}
}

// SessionName returns the session cookie name.
func (j *Jar) SessionName() string {
	return j.sessionName
}

// SetSession stores the signed session token.
func (j *Jar) SetSession(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(j.build(j.sessionName, token, expiresAt))
}

// Session returns the session token sent by the browser, or "".
func (j *Jar) Session(c echo.Context) string {
	return j.read(c, j.sessionName)
}

// ClearSession expires the session cookie.
func (j *Jar) ClearSession(c echo.Context) {
	c.SetCookie(j.expired(j.sessionName))
}

// SetState stores the OAuth state for the callback to compare against.
func (j *Jar) SetState(c echo.Context, state string) {
	cookie := j.build(StateCookieName, state, j.now().Add(stateTTL))
	cookie.Path = "/auth/google"
	c.SetCookie(cookie)
}

// State returns the OAuth state sent by the browser, or "".
func (j *Jar) State(c echo.Context) string {
	return j.read(c, StateCookieName)
}

// ClearState expires the OAuth state cookie. A state is good for one callback.
func (j *Jar) ClearState(c echo.Context) {
	cookie := j.expired(StateCookieName)
	cookie.Path = "/auth/google"
	c.SetCookie(cookie)
}

func (j *Jar) build(name, value string, expiresAt time.Time) *http.Cookie {
	maxAge := int(expiresAt.Sub(j.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *Jar) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *Jar) read(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
