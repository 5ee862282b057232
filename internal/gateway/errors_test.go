package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap("op", nil))
}

func TestKindOf_Postgres(t *testing.T) {
	cases := map[string]Kind{
		"42501": KindPermission,
		"23505": KindConflict,
		"23502": KindValidation,
		"08006": KindUnavailable,
		"XX000": KindUnknown,
	}
	for code, want := range cases {
		err := Wrap("insert cafe", fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "boom"}))
		assert.Equal(t, want, KindOf(err), "code %s", code)
	}
}

func TestKindOf_Storage(t *testing.T) {
	denied := &smithy.GenericAPIError{Code: "AccessDenied", Message: "policy"}
	missing := &smithy.GenericAPIError{Code: "NoSuchKey"}

	assert.True(t, IsPermission(Wrap("upload", denied)))
	assert.True(t, IsNotFound(Wrap("remove", missing)))
}

func TestKindOf_IgnoresMessageText(t *testing.T) {
	err := errors.New("new row violates row-level security policy")
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestKindOf_Sentinels(t *testing.T) {
	assert.Equal(t, KindPermission, KindOf(ErrForbidden))
	assert.Equal(t, KindNotFound, KindOf(gorm.ErrRecordNotFound))
	assert.Equal(t, KindUnavailable, KindOf(context.DeadlineExceeded))
}

func TestWrap_KeepsFirstClassification(t *testing.T) {
	inner := Wrap("select cafe", gorm.ErrRecordNotFound)
	outer := Wrap("update cafe", inner)

	assert.Same(t, inner, outer)
	assert.Equal(t, "select cafe: record not found", outer.Error())
}
