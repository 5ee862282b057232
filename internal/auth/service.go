package auth

import (
	"context"
	"net/url"

	"github.com/markbates/goth"

	"github.com/BruksfildServices01/ratemycafe/internal/domain/user"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
	"github.com/BruksfildServices01/ratemycafe/internal/validators"
)

var (
	ErrUnknownEmail = httperr.ErrBusinessMsg("user_not_found", "No user found with this email.")
	ErrNoEmail      = httperr.ErrBusinessMsg("provider_email_missing", "The identity provider did not share an email address.")
)

type Service struct {
	users   user.Repository
	links   *MagicLinks
	mailer  Mailer
	events  *Events
	siteURL string

	// imageURL resolves a stored avatar value for the session; nil keeps it.
	imageURL func(string) string
}

func NewService(
	users user.Repository,
	links *MagicLinks,
	mailer Mailer,
	events *Events,
	siteURL string,
) *Service {
	return &Service{
		users:   users,
		links:   links,
		mailer:  mailer,
		events:  events,
		siteURL: siteURL,
	}
}

// ResolveImagesWith makes sessions carry fn(users.image) instead of the
// stored value.
func (s *Service) ResolveImagesWith(fn func(string) string) {
	s.imageURL = fn
}

// CompleteOAuth upserts the provider profile and returns the session to start.
func (s *Service) CompleteOAuth(ctx context.Context, gu goth.User) (*Session, error) {
	profile := FromGothUser(gu)
	if profile.Email == "" {
		return nil, ErrNoEmail
	}

	u := &models.User{
		ID:       gu.Provider + ":" + profile.UserID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Image:    profile.Image,
	}
	if err := s.users.UpsertUser(ctx, u); err != nil {
		return nil, err
	}

	sess := s.sessionFor(u)
	s.events.Publish(Event{Kind: SignedIn, Method: gu.Provider, Session: *sess})
	return sess, nil
}

// RequestMagicLink mails a sign-in link to an existing user. Unknown
// addresses are refused; magic links never create accounts.
func (s *Service) RequestMagicLink(ctx context.Context, email, next string) error {
	email, err := validators.NormalizeEmail(email)
	if err != nil {
		return err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err != nil {
		if gateway.IsNotFound(err) {
			return ErrUnknownEmail
		}
		return err
	}

	token, err := s.links.Issue(email)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("token", token)
	if next != "" {
		q.Set("next", next)
	}
	link := s.siteURL + "/auth/magic-link/verify?" + q.Encode()

	return s.mailer.SendMagicLink(ctx, email, link)
}

// VerifyMagicLink redeems the token and returns the session to start.
func (s *Service) VerifyMagicLink(ctx context.Context, token string) (*Session, error) {
	email, err := s.links.Redeem(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}

	sess := s.sessionFor(u)
	s.events.Publish(Event{Kind: SignedIn, Method: "magic_link", Session: *sess})
	return sess, nil
}

func (s *Service) SignedOut(sess *Session) {
	if sess == nil {
		return
	}
	s.events.Publish(Event{Kind: SignedOut, Session: *sess})
}

func (s *Service) sessionFor(u *models.User) *Session {
	image := u.Image
	if s.imageURL != nil {
		image = s.imageURL(image)
	}
	return &Session{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Image:    image,
	}
}
