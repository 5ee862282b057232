package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	ucCafe "github.com/BruksfildServices01/ratemycafe/internal/usecase/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/gallery"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/profile"
)

// ======================================================
// HANDLER
// ======================================================

// AppWebHandler renders the pages behind the session guard: the profile
// page and the admin panel.
type AppWebHandler struct {
	*Pages

	profile  *profile.Service
	sessions *auth.Sessions

	listCafes  *ucCafe.ListAdminCafes
	getCafe    *ucCafe.GetCafe
	createCafe *ucCafe.CreateCafe
	updateCafe *ucCafe.UpdateCafe
	deleteCafe *ucCafe.DeleteCafe
	gallery    *gallery.Service
}

func NewAppWebHandler(
	pages *Pages,
	profile *profile.Service,
	sessions *auth.Sessions,
	listCafes *ucCafe.ListAdminCafes,
	getCafe *ucCafe.GetCafe,
	createCafe *ucCafe.CreateCafe,
	updateCafe *ucCafe.UpdateCafe,
	deleteCafe *ucCafe.DeleteCafe,
	gallery *gallery.Service,
) *AppWebHandler {
	return &AppWebHandler{
		Pages:      pages,
		profile:    profile,
		sessions:   sessions,
		listCafes:  listCafes,
		getCafe:    getCafe,
		createCafe: createCafe,
		updateCafe: updateCafe,
		deleteCafe: deleteCafe,
		gallery:    gallery,
	}
}

// ======================================================
// PROFILE
// ======================================================

func (h *AppWebHandler) Profile(c *gin.Context) {
	u, err := h.profile.Get(c.Request.Context(), viewerID(c))
	if err != nil {
		h.render(c, httperr.Status(err), "profile", gin.H{"Error": httperr.Message(err, "load profile")})
		return
	}
	h.render(c, http.StatusOK, "profile", gin.H{"Title": "Profile - RateMyCafe", "User": u})
}

// POST /profile
func (h *AppWebHandler) UpdateProfile(c *gin.Context) {
	u, err := h.profile.Rename(c.Request.Context(), viewerID(c), c.PostForm("full_name"))
	if err != nil {
		h.fail(c, "/profile", err, "update profile")
		return
	}
	restartSession(c, h.sessions, u)
	h.redirect(c, "/profile", "flash", "Profile updated.")
}

// POST /profile/avatar
func (h *AppWebHandler) UploadAvatar(c *gin.Context) {
	f, err := optionalUpload(c, "avatar")
	if err == nil && f == nil {
		err = errNoAvatar
	}
	if err != nil {
		h.fail(c, "/profile", err, "upload avatar")
		return
	}

	u, err := h.profile.UploadAvatar(c.Request.Context(), viewerID(c), *f)
	if err != nil {
		h.fail(c, "/profile", err, "upload avatar")
		return
	}
	restartSession(c, h.sessions, u)
	h.redirect(c, "/profile", "flash", "Avatar updated.")
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppWebHandler) Admin(c *gin.Context) {
	cafes, err := h.listCafes.Execute(c.Request.Context())
	if err != nil {
		h.render(c, httperr.Status(err), "admin", gin.H{"Error": httperr.Message(err, "load cafes")})
		return
	}
	h.render(c, http.StatusOK, "admin", gin.H{"Title": "Admin - RateMyCafe", "Cafes": cafes})
}

// POST /admin/cafes
func (h *AppWebHandler) CreateCafe(c *gin.Context) {
	in, err := cafeInputFromRequest(c)
	if err != nil {
		h.fail(c, "/admin", err, "add cafe")
		return
	}

	cafe, err := h.createCafe.Execute(c.Request.Context(), viewerID(c), in)
	if err != nil {
		h.fail(c, "/admin", err, "add cafe")
		return
	}
	h.redirect(c, "/admin", "flash", cafe.Name+" added.")
}

// AdminCafe shows the edit form and the gallery of one cafe.
func (h *AppWebHandler) AdminCafe(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.getCafe.Execute(c.Request.Context(), id, "/cafes/"+id)
	if err != nil {
		if gateway.IsNotFound(err) {
			h.notFound(c)
			return
		}
		h.fail(c, "/admin", err, "load cafe")
		return
	}

	data := gin.H{"Title": detail.Cafe.Name + " - Admin", "Cafe": &detail.Cafe}
	files, err := h.gallery.Open(c.Request.Context(), id)
	if err != nil {
		data["Error"] = httperr.Message(err, "load gallery")
	}
	data["Files"] = files

	h.render(c, http.StatusOK, "admin-cafe", data)
}

// POST /admin/cafes/:id
func (h *AppWebHandler) UpdateCafe(c *gin.Context) {
	back := "/admin/cafes/" + c.Param("id")

	in, err := cafeInputFromRequest(c)
	if err != nil {
		h.fail(c, back, err, "update cafe")
		return
	}

	if _, err := h.updateCafe.Execute(c.Request.Context(), viewerID(c), c.Param("id"), in); err != nil {
		h.fail(c, back, err, "update cafe")
		return
	}
	h.redirect(c, back, "flash", "Cafe updated.")
}

// POST /admin/cafes/:id/delete
func (h *AppWebHandler) DeleteCafe(c *gin.Context) {
	if !confirmed(c) {
		h.fail(c, "/admin", errConfirmationRequired, "delete cafe")
		return
	}

	if err := h.deleteCafe.Execute(c.Request.Context(), viewerID(c), c.Param("id")); err != nil {
		h.fail(c, "/admin", err, "delete cafe")
		return
	}
	h.redirect(c, "/admin", "flash", "Cafe deleted.")
}

// POST /admin/cafes/:id/gallery
func (h *AppWebHandler) UploadGallery(c *gin.Context) {
	back := "/admin/cafes/" + c.Param("id")

	files, _, err := readUploads(c, "files")
	if err == nil && len(files) == 0 {
		err = gallery.ErrNoImagesUploaded
	}
	if err != nil {
		h.fail(c, back, err, "upload images")
		return
	}

	res, err := h.gallery.Upload(c.Request.Context(), viewerID(c), c.Param("id"), files)
	if err != nil {
		h.fail(c, back, err, "upload images")
		return
	}
	if len(res.Failed) > 0 {
		h.redirect(c, back, "error", "Some images could not be uploaded.")
		return
	}
	h.redirect(c, back, "flash", "Images uploaded.")
}

// POST /admin/cafes/:id/gallery/:file/delete
func (h *AppWebHandler) DeleteGalleryImage(c *gin.Context) {
	back := "/admin/cafes/" + c.Param("id")

	if _, err := h.gallery.Delete(c.Request.Context(), viewerID(c), c.Param("id"), c.Param("file")); err != nil {
		h.fail(c, back, err, "delete image")
		return
	}
	h.redirect(c, back, "flash", "Image deleted.")
}

// POST /admin/cafes/:id/gallery/reconcile
func (h *AppWebHandler) ReconcileGallery(c *gin.Context) {
	back := "/admin/cafes/" + c.Param("id")

	changed, err := h.gallery.Reconcile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, back, err, "resync gallery")
		return
	}
	msg := "Gallery already in sync."
	if changed {
		msg = "Gallery resynced with storage."
	}
	h.redirect(c, back, "flash", msg)
}
