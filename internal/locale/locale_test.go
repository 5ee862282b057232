package locale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	r := NewRouter("km")

	assert.Equal(t, "/", r.Path("km", "/"))
	assert.Equal(t, "/sign-in", r.Path("km", "/sign-in"))
	assert.Equal(t, "/en", r.Path("en", "/"))
	assert.Equal(t, "/en/cafes/1", r.Path("en", "cafes/1"))
	assert.Equal(t, "/admin", r.Path("fr", "/admin"))
}

func TestSplit(t *testing.T) {
	r := NewRouter("km")

	l, p := r.Split("/en/cafes/1")
	assert.Equal(t, "en", l)
	assert.Equal(t, "/cafes/1", p)

	l, p = r.Split("/km")
	assert.Equal(t, "km", l)
	assert.Equal(t, "/", p)

	l, p = r.Split("/english")
	assert.Equal(t, "km", l)
	assert.Equal(t, "/english", p)
}

func TestNewRouterFallsBackToKhmer(t *testing.T) {
	assert.Equal(t, "km", NewRouter("de").Default())
	assert.Equal(t, "en", NewRouter("en").Default())
}

func TestContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
	assert.Equal(t, "en", FromContext(WithLocale(context.Background(), "en")))
}
