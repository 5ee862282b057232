package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	ucCafe "github.com/BruksfildServices01/ratemycafe/internal/usecase/cafe"
)

// ======================================================
// HANDLER
// ======================================================

type AdminCafeHandler struct {
	listCafes  *ucCafe.ListAdminCafes
	createCafe *ucCafe.CreateCafe
	updateCafe *ucCafe.UpdateCafe
	deleteCafe *ucCafe.DeleteCafe
}

func NewAdminCafeHandler(
	listCafes *ucCafe.ListAdminCafes,
	createCafe *ucCafe.CreateCafe,
	updateCafe *ucCafe.UpdateCafe,
	deleteCafe *ucCafe.DeleteCafe,
) *AdminCafeHandler {
	return &AdminCafeHandler{
		listCafes:  listCafes,
		createCafe: createCafe,
		updateCafe: updateCafe,
		deleteCafe: deleteCafe,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type cafeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"image_url"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// cafeInputFromRequest accepts a JSON body or a (multipart) form. Only
// forms can carry a logo file, under the "logo" field.
func cafeInputFromRequest(c *gin.Context) (ucCafe.Input, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req cafeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return ucCafe.Input{}, httperr.ErrBusinessMsg("invalid_request", "Invalid request body.")
		}
		return ucCafe.Input{
			Name:        req.Name,
			Description: req.Description,
			Location:    req.Location,
			ImageURL:    req.ImageURL,
			Lat:         req.Lat,
			Lng:         req.Lng,
		}, nil
	}

	lat, err := optionalFloat(c.PostForm("lat"))
	if err != nil {
		return ucCafe.Input{}, err
	}
	lng, err := optionalFloat(c.PostForm("lng"))
	if err != nil {
		return ucCafe.Input{}, err
	}
	logo, err := optionalUpload(c, "logo")
	if err != nil {
		return ucCafe.Input{}, err
	}

	return ucCafe.Input{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		ImageURL:    c.PostForm("image_url"),
		Lat:         lat,
		Lng:         lng,
		Logo:        logo,
	}, nil
}

// confirmed reports whether the caller confirmed a destructive action.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true" || c.PostForm("confirm") == "true"
}

var errConfirmationRequired = httperr.ErrBusinessMsg("confirmation_required", "Are you sure you want to delete this cafe? Pass confirm=true.")

// ======================================================
// HANDLERS
// ======================================================

// GET /api/v1/admin/cafes
func (h *AdminCafeHandler) List(c *gin.Context) {
	cafes, err := h.listCafes.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "cafe_list_failed", "load cafes")
		return
	}
	httpresp.List(c, cafes)
}

// POST /api/v1/admin/cafes
func (h *AdminCafeHandler) Create(c *gin.Context) {
	in, err := cafeInputFromRequest(c)
	if err != nil {
		httperr.FromError(c, err, "invalid_request", "add cafe")
		return
	}

	cafe, err := h.createCafe.Execute(c.Request.Context(), viewerID(c), in)
	if err != nil {
		httperr.FromError(c, err, "cafe_create_failed", "add cafe")
		return
	}
	httpresp.Created(c, cafe)
}

// PUT /api/v1/admin/cafes/:id
func (h *AdminCafeHandler) Update(c *gin.Context) {
	in, err := cafeInputFromRequest(c)
	if err != nil {
		httperr.FromError(c, err, "invalid_request", "update cafe")
		return
	}

	cafe, err := h.updateCafe.Execute(c.Request.Context(), viewerID(c), c.Param("id"), in)
	if err != nil {
		httperr.FromError(c, err, "cafe_update_failed", "update cafe")
		return
	}
	httpresp.OK(c, cafe)
}

// DELETE /api/v1/admin/cafes/:id?confirm=true
func (h *AdminCafeHandler) Delete(c *gin.Context) {
	if !confirmed(c) {
		httperr.FromError(c, errConfirmationRequired, "confirmation_required", "delete cafe")
		return
	}

	if err := h.deleteCafe.Execute(c.Request.Context(), viewerID(c), c.Param("id")); err != nil {
		httperr.FromError(c, err, "cafe_delete_failed", "delete cafe")
		return
	}
	httpresp.NoContent(c)
}
