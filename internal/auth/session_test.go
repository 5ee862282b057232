package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_StartLoadEnd(t *testing.T) {
	s := NewSessions(NewCookieStore("test-secret-test-secret-test-sec", false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, s.Load(req))

	w := httptest.NewRecorder()
	require.NoError(t, s.Start(w, req, Session{UserID: "google:1", Email: "dara@example.com", FullName: "Dara"}))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	got := s.Load(req)
	require.NotNil(t, got)
	assert.Equal(t, "google:1", got.UserID)
	assert.Equal(t, "dara@example.com", got.Email)
	assert.Equal(t, "Dara", got.FullName)

	w = httptest.NewRecorder()
	require.NoError(t, s.End(w, req))
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestSessions_TamperedCookieIsAnonymous(t *testing.T) {
	s := NewSessions(NewCookieStore("test-secret-test-secret-test-sec", false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})
	assert.Nil(t, s.Load(req))
}

func TestContextAndAdmin(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	s := &Session{UserID: "u", Email: "Sopheak0891@gmail.com"}
	ctx = WithSession(ctx, s)
	assert.Same(t, s, FromContext(ctx))

	assert.True(t, s.IsAdmin("sopheak0891@gmail.com"))
	assert.False(t, s.IsAdmin("other@example.com"))
	assert.False(t, s.IsAdmin(""))

	var anon *Session
	assert.False(t, anon.IsAdmin("sopheak0891@gmail.com"))
}

func TestNewCookieStore_SameSiteLax(t *testing.T) {
	s := NewSessions(NewCookieStore("test-secret-test-secret-test-sec", true))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, s.Start(w, req, Session{UserID: "google:1", Email: "dara@example.com"}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}
