package validators

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

// NormalizeEmail lower-cases a bare address and rejects anything else,
// including display-name forms like "Dara <dara@example.com>".
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", httperr.ErrBusinessMsg("email_required", "Please enter your email")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", httperr.ErrBusinessMsg("invalid_email", "Please enter a valid email address")
	}

	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return "", httperr.ErrBusinessMsg("invalid_email", "Please enter a valid email address")
	}
	return email, nil
}
