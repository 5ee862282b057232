package user

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

const MaxFullNameLength = 150

func NormalizeFullName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", httperr.ErrBusinessMsg("full_name_required", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxFullNameLength {
		return "", httperr.ErrBusinessMsg("full_name_too_long", "Name is too long")
	}
	return name, nil
}

// DisplayName falls back to "Anonymous" when the author is unknown or unnamed.
func DisplayName(u *models.ReviewAuthor) string {
	if u == nil || strings.TrimSpace(u.FullName) == "" {
		return "Anonymous"
	}
	return u.FullName
}
