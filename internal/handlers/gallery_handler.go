package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/gallery"
)

// ======================================================
// HANDLER
// ======================================================

type GalleryHandler struct {
	gallery *gallery.Service
}

func NewGalleryHandler(svc *gallery.Service) *GalleryHandler {
	return &GalleryHandler{gallery: svc}
}

var errNoFiles = httperr.ErrBusinessMsg("no_files", "Please choose at least one image.")

// GET /api/v1/admin/cafes/:id/gallery
func (h *GalleryHandler) Open(c *gin.Context) {
	files, err := h.gallery.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "gallery_open_failed", "load gallery")
		return
	}
	httpresp.List(c, files)
}

// POST /api/v1/admin/cafes/:id/gallery (multipart, field "files")
func (h *GalleryHandler) Upload(c *gin.Context) {
	files, unreadable, err := readUploads(c, "files")
	if err != nil {
		httperr.FromError(c, err, "invalid_form", "upload images")
		return
	}
	if len(files) == 0 && len(unreadable) == 0 {
		httperr.FromError(c, errNoFiles, "no_files", "upload images")
		return
	}
	if len(files) == 0 {
		httperr.FromError(c, gallery.ErrNoImagesUploaded, "no_images_uploaded", "upload images")
		return
	}

	res, err := h.gallery.Upload(c.Request.Context(), viewerID(c), c.Param("id"), files)
	if err != nil {
		httperr.FromError(c, err, "gallery_upload_failed", "upload images")
		return
	}
	res.Failed = append(res.Failed, unreadable...)

	httpresp.Created(c, res)
}

// DELETE /api/v1/admin/cafes/:id/gallery/:file
func (h *GalleryHandler) Delete(c *gin.Context) {
	urls, err := h.gallery.Delete(c.Request.Context(), viewerID(c), c.Param("id"), c.Param("file"))
	if err != nil {
		httperr.FromError(c, err, "gallery_delete_failed", "delete image")
		return
	}
	httpresp.OK(c, gin.H{"gallery_urls": urls})
}

// POST /api/v1/admin/cafes/:id/gallery/reconcile
func (h *GalleryHandler) Reconcile(c *gin.Context) {
	changed, err := h.gallery.Reconcile(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "gallery_reconcile_failed", "resync gallery")
		return
	}
	httpresp.OK(c, gin.H{"changed": changed})
}

// POST /api/v1/admin/gallery/reconcile
func (h *GalleryHandler) ReconcileAll(c *gin.Context) {
	repaired, err := h.gallery.ReconcileAll(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "gallery_reconcile_failed", "resync galleries")
		return
	}
	httpresp.OK(c, gin.H{"repaired": repaired})
}
