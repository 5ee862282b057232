// Package locale implements "as-needed" locale prefixes: the default locale
// is served without a prefix, every other locale under /<locale>.
package locale

import (
	"context"
	"strings"
)

var Supported = []string{"en", "km"}

type Router struct {
	def string
}

func NewRouter(defaultLocale string) *Router {
	if !IsSupported(defaultLocale) {
		defaultLocale = "km"
	}
	return &Router{def: defaultLocale}
}

func (r *Router) Default() string { return r.def }

func IsSupported(l string) bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Prefix is the path prefix of locale l, empty for the default locale.
func (r *Router) Prefix(l string) string {
	if l == "" || l == r.def || !IsSupported(l) {
		return ""
	}
	return "/" + l
}

// Path localizes an absolute app path: Path("en", "/sign-in") is
// "/en/sign-in" and the default locale's home is "/".
func (r *Router) Path(l, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	prefix := r.Prefix(l)
	if prefix == "" {
		return p
	}
	if p == "/" {
		return prefix
	}
	return prefix + p
}

// Split separates a locale prefix from p. Paths without one belong to the
// default locale.
func (r *Router) Split(p string) (string, string) {
	for _, l := range Supported {
		if p == "/"+l {
			return l, "/"
		}
		if strings.HasPrefix(p, "/"+l+"/") {
			return l, strings.TrimPrefix(p, "/"+l)
		}
	}
	return r.def, p
}

type ctxKey struct{}

func WithLocale(ctx context.Context, l string) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) string {
	l, _ := ctx.Value(ctxKey{}).(string)
	return l
}
