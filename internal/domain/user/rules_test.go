package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
)

func TestNormalizeFullName(t *testing.T) {
	n, err := NormalizeFullName("  Sok   Dara ")
	require.NoError(t, err)
	assert.Equal(t, "Sok Dara", n)

	_, err = NormalizeFullName("   ")
	assert.True(t, httperr.IsBusiness(err, "full_name_required"))

	_, err = NormalizeFullName(strings.Repeat("x", MaxFullNameLength+1))
	assert.True(t, httperr.IsBusiness(err, "full_name_too_long"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Anonymous", DisplayName(nil))
	assert.Equal(t, "Anonymous", DisplayName(&models.ReviewAuthor{ID: "u1"}))
	assert.Equal(t, "Dara", DisplayName(&models.ReviewAuthor{ID: "u1", FullName: "Dara"}))
}
