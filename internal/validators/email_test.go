package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

func TestNormalizeEmail(t *testing.T) {
	e, err := NormalizeEmail("  Dara@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "dara@example.com", e)

	_, err = NormalizeEmail("   ")
	assert.True(t, httperr.IsBusiness(err, "email_required"))

	for _, bad := range []string{"dara", "dara@", "@example.com", "Dara <dara@example.com>", "dara@localhost"} {
		_, err = NormalizeEmail(bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_email"), bad)
	}
}
