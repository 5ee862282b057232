package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	reviewdomain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	ucCafe "github.com/BruksfildServices01/ratemycafe/internal/usecase/cafe"
	ucReview "github.com/BruksfildServices01/ratemycafe/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

// PublicWebHandler renders the pages anyone can see: the cafe list, cafe
// details with their reviews, and the sign-in page.
type PublicWebHandler struct {
	*Pages

	listCafes    *ucCafe.ListCafes
	getCafe      *ucCafe.GetCafe
	listReviews  *ucReview.ListReviews
	submitReview *ucReview.SubmitReview
	editReview   *ucReview.EditReview
	deleteReview *ucReview.DeleteReview

	providers []string
}

func NewPublicWebHandler(
	pages *Pages,
	listCafes *ucCafe.ListCafes,
	getCafe *ucCafe.GetCafe,
	listReviews *ucReview.ListReviews,
	submitReview *ucReview.SubmitReview,
	editReview *ucReview.EditReview,
	deleteReview *ucReview.DeleteReview,
	providers []string,
) *PublicWebHandler {
	return &PublicWebHandler{
		Pages:        pages,
		listCafes:    listCafes,
		getCafe:      getCafe,
		listReviews:  listReviews,
		submitReview: submitReview,
		editReview:   editReview,
		deleteReview: deleteReview,
		providers:    providers,
	}
}

type starCount struct {
	Stars int
	Count int
}

// ======================================================
// LISTING
// ======================================================

// Home lists cafes. Bad sort or position parameters fall back to the
// defaults with a message rather than failing the page.
func (h *PublicWebHandler) Home(c *gin.Context) {
	data := gin.H{"Query": c.Query("q")}

	mode, err := domain.ParseSortMode(c.Query("sort"))
	if err != nil {
		data["Error"] = httperr.Message(err, "sort cafes")
		mode = domain.SortAlphabetical
	}
	data["Sort"] = string(mode)

	origin, err := originFromQuery(c)
	if err != nil {
		data["Error"] = httperr.Message(err, "compute distances")
		origin = nil
	}
	if origin != nil {
		data["Origin"] = origin
	}

	listings, err := h.listCafes.Execute(c.Request.Context(), ucCafe.ListInput{
		Query:  c.Query("q"),
		Sort:   mode,
		Origin: origin,
	})
	if err != nil {
		data["Error"] = httperr.Message(err, "load cafes")
		h.render(c, httperr.Status(err), "home", data)
		return
	}
	data["Cafes"] = listings

	h.render(c, http.StatusOK, "home", data)
}

// ======================================================
// DETAIL
// ======================================================

func (h *PublicWebHandler) Cafe(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.getCafe.Execute(c.Request.Context(), id, h.lr.Path(h.locale(c), "/cafes/"+id))
	if err != nil {
		if gateway.IsNotFound(err) {
			h.notFound(c)
			return
		}
		h.render(c, httperr.Status(err), "home", gin.H{"Error": httperr.Message(err, "load cafe"), "Sort": string(domain.SortAlphabetical)})
		return
	}

	reviews, err := h.listReviews.Execute(c.Request.Context(), id, viewerID(c))
	if err != nil {
		h.render(c, httperr.Status(err), "home", gin.H{"Error": httperr.Message(err, "load reviews"), "Sort": string(domain.SortAlphabetical)})
		return
	}

	dist := make([]starCount, 0, reviewdomain.MaxRating)
	for stars := reviewdomain.MaxRating; stars >= reviewdomain.MinRating; stars-- {
		dist = append(dist, starCount{Stars: stars, Count: reviews.Summary.Distribution[stars-1]})
	}

	h.render(c, http.StatusOK, "cafe", gin.H{
		"Title":        detail.Share.Title,
		"Share":        detail.Share,
		"Detail":       detail,
		"Reviews":      reviews,
		"Distribution": dist,
		"Ratings":      []int{1, 2, 3, 4, 5},
		"Next":         c.Request.URL.RequestURI(),
	})
}

// ======================================================
// REVIEW FORMS
// ======================================================

// POST /cafes/:id/reviews
func (h *PublicWebHandler) SubmitReview(c *gin.Context) {
	id := c.Param("id")
	back := "/cafes/" + id

	sess := currentSession(c)
	if sess == nil {
		h.fail(c, back, ucReview.ErrLoginRequired, "submit review")
		return
	}

	rating, _ := strconv.Atoi(c.PostForm("rating"))
	_, err := h.submitReview.Execute(
		c.Request.Context(),
		&reviewdomain.Reviewer{ID: sess.UserID, FullName: sess.FullName},
		id,
		rating,
		c.PostForm("comment"),
	)
	if err != nil {
		h.fail(c, back, err, "submit review")
		return
	}
	h.redirect(c, back, "flash", "Thank you for your review!")
}

// POST /cafes/:id/reviews/:reviewID/edit
func (h *PublicWebHandler) EditReview(c *gin.Context) {
	back := "/cafes/" + c.Param("id")

	if _, err := h.editReview.Execute(c.Request.Context(), viewerID(c), c.Param("reviewID"), c.PostForm("comment")); err != nil {
		h.fail(c, back, err, "edit review")
		return
	}
	h.redirect(c, back, "flash", "Review updated.")
}

// POST /cafes/:id/reviews/:reviewID/delete
func (h *PublicWebHandler) DeleteReview(c *gin.Context) {
	back := "/cafes/" + c.Param("id")

	if err := h.deleteReview.Execute(c.Request.Context(), viewerID(c), c.Param("reviewID")); err != nil {
		h.fail(c, back, err, "delete review")
		return
	}
	h.redirect(c, back, "flash", "Review deleted.")
}

// ======================================================
// SIGN IN & STATIC
// ======================================================

// SignIn shows the provider buttons and the magic-link form. Signed-in
// visitors go straight on.
func (h *PublicWebHandler) SignIn(c *gin.Context) {
	next := safeNext(c.Query("next"))

	if currentSession(c) != nil {
		if next == "" {
			next = h.lr.Path(h.locale(c), "/")
		}
		c.Redirect(http.StatusFound, next)
		return
	}

	h.render(c, http.StatusOK, "sign-in", gin.H{
		"Title":     "Sign in - RateMyCafe",
		"Providers": h.providers,
		"Next":      next,
	})
}

// Static renders a page without data, such as about or terms.
func (h *PublicWebHandler) Static(page, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, page, gin.H{"Title": title + " - RateMyCafe"})
	}
}

// NoRoute answers unknown paths with the not-found page, or JSON for the API.
func (h *PublicWebHandler) NoRoute(c *gin.Context) {
	if wantsJSON(c) {
		httperr.NotFound(c, "not_found", "Not found.")
		return
	}
	h.notFound(c)
}
