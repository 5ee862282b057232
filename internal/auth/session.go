// Package auth holds the request session, OAuth and magic-link sign-in.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

const SessionName = "ratemycafe_session"

// Session is the signed-in user attached to a request.
type Session struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Image    string `json:"image"`
}

func (s *Session) IsAdmin(adminEmail string) bool {
	return s != nil && adminEmail != "" && strings.EqualFold(s.Email, adminEmail)
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session of the request, nil when anonymous.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

// NewCookieStore builds the store shared by the app session and gothic.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	// cross-site form posts must not carry the session
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

type Sessions struct {
	store sessions.Store
}

func NewSessions(store sessions.Store) *Sessions {
	return &Sessions{store: store}
}

// Load reads the session cookie. A missing or undecodable cookie is an
// anonymous request, not an error.
func (s *Sessions) Load(r *http.Request) *Session {
	sess, err := s.store.Get(r, SessionName)
	if err != nil || sess == nil {
		return nil
	}

	userID, _ := sess.Values["user_id"].(string)
	if userID == "" {
		return nil
	}

	out := &Session{UserID: userID}
	out.Email, _ = sess.Values["email"].(string)
	out.FullName, _ = sess.Values["full_name"].(string)
	out.Image, _ = sess.Values["image"].(string)
	return out
}

func (s *Sessions) Start(w http.ResponseWriter, r *http.Request, in Session) error {
	sess, _ := s.store.Get(r, SessionName)
	sess.Values["user_id"] = in.UserID
	sess.Values["email"] = in.Email
	sess.Values["full_name"] = in.FullName
	sess.Values["image"] = in.Image
	return sess.Save(r, w)
}

func (s *Sessions) End(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, SessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
