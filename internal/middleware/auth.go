package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
)

const (
	ContextSession = "session"
	ContextLocale  = "locale"
)

// LoadSession attaches the cookie session, if any, to the request context.
// It never rejects a request.
func LoadSession(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := sessions.Load(c.Request); s != nil {
			c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), s))
			c.Set(ContextSession, s)
		}
		c.Next()
	}
}

// Locale pins the locale of a route group.
func Locale(l string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(locale.WithLocale(c.Request.Context(), l))
		c.Set(ContextLocale, l)
		c.Next()
	}
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// RequireSession sends anonymous visitors to the sign-in page of their
// locale, remembering where they were going. The sign-in page itself always
// passes. API routes answer 401 instead of redirecting.
func RequireSession(lr *locale.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.FromContext(c.Request.Context()) != nil {
			c.Next()
			return
		}

		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error_code": "unauthenticated",
				"message":    "Please sign in to continue.",
			})
			return
		}

		l, rest := lr.Split(c.Request.URL.Path)
		if rest == "/sign-in" {
			c.Next()
			return
		}

		target := lr.Path(l, "/sign-in") + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// AdminOnly lets through only the configured admin account. Everyone else,
// anonymous or not, is sent to the localized home page (API: 403).
func AdminOnly(adminEmail string, lr *locale.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.FromContext(c.Request.Context()).IsAdmin(adminEmail) {
			c.Next()
			return
		}

		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_code": "forbidden",
				"message":    "Only the administrator can do this.",
			})
			return
		}

		l, _ := lr.Split(c.Request.URL.Path)
		c.Redirect(http.StatusFound, lr.Path(l, "/"))
		c.Abort()
	}
}
