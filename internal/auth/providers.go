package auth

import (
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/BruksfildServices01/ratemycafe/internal/config"
)

// SetupProviders registers the OAuth providers that have credentials and
// returns their names.
func SetupProviders(cfg *config.Config, store sessions.Store) []string {
	gothic.Store = store

	var names []string
	if cfg.GoogleKey != "" && cfg.GoogleSecret != "" {
		p := google.New(cfg.GoogleKey, cfg.GoogleSecret, cfg.OAuthCallbackURL("google"), "email", "profile")
		p.SetPrompt("select_account")
		goth.UseProviders(p)
		names = append(names, p.Name())
	}
	return names
}

// FromGothUser maps the provider profile onto the user row fields.
func FromGothUser(u goth.User) Session {
	name := u.Name
	if name == "" {
		name = u.NickName
	}
	return Session{
		UserID:   u.UserID,
		Email:    u.Email,
		FullName: name,
		Image:    u.AvatarURL,
	}
}
