package httperr

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(ErrBusiness("name_required")))
	assert.Equal(t, http.StatusForbidden, Status(gateway.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, Status(gateway.Wrap("insert cafe", &pgconn.PgError{Code: "42501"})))
	assert.Equal(t, http.StatusNotFound, Status(gateway.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, Status(assert.AnError))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Cafe name is required", Message(ErrBusinessMsg("name_required", "Cafe name is required"), "create cafe"))
	assert.Equal(t, "Permission denied. You are not allowed to create cafe.", Message(gateway.ErrForbidden, "create cafe"))
	assert.Equal(t, "Failed to delete cafe.", Message(assert.AnError, "delete cafe"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "rating_required", Code(ErrBusiness("rating_required"), "x"))
	assert.Equal(t, "permission", Code(gateway.ErrForbidden, "x"))
	assert.Equal(t, "failed_to_update_cafe", Code(assert.AnError, "failed_to_update_cafe"))
}
