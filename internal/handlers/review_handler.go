package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/review"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	ucReview "github.com/BruksfildServices01/ratemycafe/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	listReviews  *ucReview.ListReviews
	submitReview *ucReview.SubmitReview
	editReview   *ucReview.EditReview
	deleteReview *ucReview.DeleteReview
}

func NewReviewHandler(
	listReviews *ucReview.ListReviews,
	submitReview *ucReview.SubmitReview,
	editReview *ucReview.EditReview,
	deleteReview *ucReview.DeleteReview,
) *ReviewHandler {
	return &ReviewHandler{
		listReviews:  listReviews,
		submitReview: submitReview,
		editReview:   editReview,
		deleteReview: deleteReview,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type editReviewRequest struct {
	Comment string `json:"comment"`
}

var errInvalidBody = httperr.ErrBusinessMsg("invalid_request", "Invalid request body.")

// ======================================================
// HANDLERS
// ======================================================

// GET /api/v1/cafes/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	page, err := h.listReviews.Execute(c.Request.Context(), c.Param("id"), viewerID(c))
	if err != nil {
		httperr.FromError(c, err, "review_list_failed", "load reviews")
		return
	}
	httpresp.OK(c, page)
}

// POST /api/v1/cafes/:id/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		httperr.Unauthorized(c, "login_required", "Please log in to submit a review")
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, errInvalidBody, "invalid_request", "submit review")
		return
	}

	rv, err := h.submitReview.Execute(
		c.Request.Context(),
		&domain.Reviewer{ID: sess.UserID, FullName: sess.FullName},
		c.Param("id"),
		req.Rating,
		req.Comment,
	)
	if err != nil {
		httperr.FromError(c, err, "review_submit_failed", "submit review")
		return
	}
	httpresp.Created(c, rv)
}

// PATCH /api/v1/reviews/:id
func (h *ReviewHandler) Edit(c *gin.Context) {
	var req editReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, errInvalidBody, "invalid_request", "edit review")
		return
	}

	rv, err := h.editReview.Execute(c.Request.Context(), viewerID(c), c.Param("id"), req.Comment)
	if err != nil {
		httperr.FromError(c, err, "review_edit_failed", "edit review")
		return
	}
	httpresp.OK(c, rv)
}

// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.deleteReview.Execute(c.Request.Context(), viewerID(c), c.Param("id")); err != nil {
		httperr.FromError(c, err, "review_delete_failed", "delete review")
		return
	}
	httpresp.NoContent(c)
}
