package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/locale"
	"github.com/BruksfildServices01/ratemycafe/internal/timezone"
)

// ======================================================
// PAGE SHELL
// ======================================================

// Pages holds what every server-rendered page needs: the locale router
// for links and the admin account for the navigation bar.
type Pages struct {
	lr         *locale.Router
	adminEmail string
	loc        *time.Location
}

func NewPages(lr *locale.Router, adminEmail string, loc *time.Location) *Pages {
	return &Pages{lr: lr, adminEmail: adminEmail, loc: loc}
}

type localeLink struct {
	Code string
	Href string
}

// Funcs are the template helpers the page templates call.
func (p *Pages) Funcs() template.FuncMap {
	return template.FuncMap{
		"lpath": p.lr.Path,
		"stars": stars,
		"date": func(t time.Time) string {
			return timezone.Format(t, p.loc)
		},
	}
}

func (p *Pages) locale(c *gin.Context) string {
	if l := locale.FromContext(c.Request.Context()); l != "" {
		return l
	}
	return p.lr.Default()
}

// render fills the shell keys and writes page through the base layout.
func (p *Pages) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	l := p.locale(c)
	sess := currentSession(c)

	_, rest := p.lr.Split(c.Request.URL.Path)
	links := make([]localeLink, 0, len(locale.Supported))
	for _, code := range locale.Supported {
		links = append(links, localeLink{Code: code, Href: p.lr.Path(code, rest)})
	}

	data["Page"] = page
	data["Locale"] = l
	data["Locales"] = links
	data["IsAdmin"] = sess.IsAdmin(p.adminEmail)
	if sess != nil {
		data["Session"] = sess
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = c.Query("flash")
	}
	if _, ok := data["Error"]; !ok {
		data["Error"] = c.Query("error")
	}

	c.HTML(status, "base", data)
}

// redirect sends the browser to the localized path p, optionally carrying
// a one-shot message for the next page.
func (p *Pages) redirect(c *gin.Context, path, key, message string) {
	target := p.lr.Path(p.locale(c), path)
	if message != "" {
		target += "?" + url.Values{key: {message}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// fail redirects back to path with err described for people.
func (p *Pages) fail(c *gin.Context, path string, err error, action string) {
	p.redirect(c, path, "error", httperr.Message(err, action))
}

func (p *Pages) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "not-found", gin.H{"Title": "Not found - RateMyCafe"})
}

// stars draws a rating as five filled or empty stars.
func stars(v any) string {
	var n int
	switch r := v.(type) {
	case int:
		n = r
	case float64:
		n = int(r + 0.5)
	}
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
