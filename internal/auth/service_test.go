package auth

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/dbtest"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/infra/repository"
)

type captureMailer struct {
	email, link string
}

func (m *captureMailer) SendMagicLink(ctx context.Context, email, link string) error {
	m.email, m.link = email, link
	return nil
}

func newService(t *testing.T) (*Service, *captureMailer, *[]Event) {
	t.Helper()

	mailer := &captureMailer{}
	events := NewEvents()
	var seen []Event
	events.Subscribe(func(ev Event) { seen = append(seen, ev) })

	svc := NewService(
		repository.NewUserGormRepository(dbtest.Open(t)),
		NewMagicLinks("secret", 15*time.Minute, NewMemoryNonceStore()),
		mailer,
		events,
		"https://rmc.example",
	)
	return svc, mailer, &seen
}

func TestService_OAuthThenMagicLink(t *testing.T) {
	svc, mailer, seen := newService(t)
	ctx := context.Background()

	err := svc.RequestMagicLink(ctx, "dara@example.com", "")
	assert.ErrorIs(t, err, ErrUnknownEmail)
	assert.Empty(t, mailer.link)

	sess, err := svc.CompleteOAuth(ctx, goth.User{
		Provider:  "google",
		UserID:    "1234",
		Email:     "Dara@Example.com",
		Name:      "Dara",
		AvatarURL: "https://lh3.example/pic.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "google:1234", sess.UserID)
	assert.Equal(t, "dara@example.com", sess.Email)

	require.NoError(t, svc.RequestMagicLink(ctx, " DARA@example.com ", "/en/cafes/c1"))
	assert.Equal(t, "dara@example.com", mailer.email)

	u, err := url.Parse(mailer.link)
	require.NoError(t, err)
	assert.Equal(t, "/auth/magic-link/verify", u.Path)
	assert.Equal(t, "/en/cafes/c1", u.Query().Get("next"))

	again, err := svc.VerifyMagicLink(ctx, u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "google:1234", again.UserID)

	_, err = svc.VerifyMagicLink(ctx, u.Query().Get("token"))
	assert.ErrorIs(t, err, ErrLinkUsed)

	svc.SignedOut(again)

	require.Len(t, *seen, 3)
	assert.Equal(t, SignedIn, (*seen)[0].Kind)
	assert.Equal(t, "google", (*seen)[0].Method)
	assert.Equal(t, "magic_link", (*seen)[1].Method)
	assert.Equal(t, SignedOut, (*seen)[2].Kind)
}

func TestService_OAuthWithoutEmail(t *testing.T) {
	svc, _, seen := newService(t)

	_, err := svc.CompleteOAuth(context.Background(), goth.User{Provider: "google", UserID: "1"})
	assert.ErrorIs(t, err, ErrNoEmail)
	assert.Empty(t, *seen)
}

func TestService_RequestMagicLinkValidatesEmail(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.RequestMagicLink(context.Background(), "", "")
	assert.True(t, httperr.IsBusiness(err, "email_required"))
}

func TestService_ResolvesStoredAvatarPaths(t *testing.T) {
	svc, _, _ := newService(t)
	svc.ResolveImagesWith(func(image string) string { return "http://cdn.test/avatars/" + image })

	sess, err := svc.CompleteOAuth(context.Background(), goth.User{
		Provider: "google",
		UserID:    "7",
		Email:     "vanna@example.com",
		AvatarURL: "google:7/1700000000000-me.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/avatars/google:7/1700000000000-me.png", sess.Image)
}
