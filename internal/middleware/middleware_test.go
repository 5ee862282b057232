package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
)

const admin = "sopheak0891@gmail.com"

func newEngine(sessions *auth.Sessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lr := locale.NewRouter("km")

	r := gin.New()
	r.Use(LoadSession(sessions))

	ok := func(c *gin.Context) { c.String(http.StatusOK, "content") }

	for _, l := range locale.Supported {
		g := r.Group(lr.Prefix(l), Locale(l))
		g.GET("/sign-in", RequireSession(lr), ok)
		g.GET("/profile", RequireSession(lr), ok)
		g.GET("/admin", AdminOnly(admin, lr), ok)
	}
	r.GET("/api/v1/me", RequireSession(lr), ok)
	r.GET("/api/v1/admin/cafes", AdminOnly(admin, lr), ok)
	r.POST("/test/sign-in", func(c *gin.Context) {
		_ = sessions.Start(c.Writer, c.Request, auth.Session{UserID: "u1", Email: c.Query("email")})
		c.Status(http.StatusNoContent)
	})
	return r
}

func signIn(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test/sign-in?email="+email, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession_RedirectThenSignIn(t *testing.T) {
	r := newEngine(auth.NewSessions(auth.NewCookieStore("0123456789abcdef0123456789abcdef", false)))

	w := get(r, "/en/profile", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/en/sign-in?next=%2Fen%2Fprofile", w.Header().Get("Location"))

	w = get(r, "/profile", nil)
	assert.Equal(t, "/sign-in?next=%2Fprofile", w.Header().Get("Location"))

	// the sign-in page never redirects to itself
	w = get(r, "/en/sign-in", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cookies := signIn(t, r, "dara@example.com")
	w = get(r, "/en/profile", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", w.Body.String())
}

func TestRequireSession_API(t *testing.T) {
	r := newEngine(auth.NewSessions(auth.NewCookieStore("0123456789abcdef0123456789abcdef", false)))

	w := get(r, "/api/v1/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestAdminOnly(t *testing.T) {
	r := newEngine(auth.NewSessions(auth.NewCookieStore("0123456789abcdef0123456789abcdef", false)))

	w := get(r, "/en/admin", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/en", w.Header().Get("Location"))

	user := signIn(t, r, "dara@example.com")
	w = get(r, "/admin", user)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = get(r, "/api/v1/admin/cafes", user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminCookies := signIn(t, r, admin)
	w = get(r, "/en/admin", adminCookies)
	assert.Equal(t, http.StatusOK, w.Code)
	w = get(r, "/api/v1/admin/cafes", adminCookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("https://rmc.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://rmc.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://rmc.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
