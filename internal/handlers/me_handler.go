package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/httpresp"
	"github.com/BruksfildServices01/ratemycafe/internal/models"
	"github.com/BruksfildServices01/ratemycafe/internal/usecase/profile"
)

var errNoAvatar = httperr.ErrBusinessMsg("avatar_required", "Please choose an image.")

type MeHandler struct {
	profile  *profile.Service
	sessions *auth.Sessions
}

func NewMeHandler(svc *profile.Service, sessions *auth.Sessions) *MeHandler {
	return &MeHandler{profile: svc, sessions: sessions}
}

type updateMeRequest struct {
	FullName string `json:"full_name" form:"full_name"`
}

// GET /api/v1/me
func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.profile.Get(c.Request.Context(), viewerID(c))
	if err != nil {
		httperr.FromError(c, err, "user_not_found", "load profile")
		return
	}
	httpresp.OK(c, u)
}

// PATCH /api/v1/me
func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.FromError(c, errInvalidBody, "invalid_request", "update profile")
		return
	}

	u, err := h.profile.Rename(c.Request.Context(), viewerID(c), req.FullName)
	if err != nil {
		httperr.FromError(c, err, "profile_update_failed", "update profile")
		return
	}
	restartSession(c, h.sessions, u)
	httpresp.OK(c, u)
}

// POST /api/v1/me/avatar (multipart, field "avatar")
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	f, err := optionalUpload(c, "avatar")
	if err != nil {
		httperr.FromError(c, err, "invalid_form", "upload avatar")
		return
	}
	if f == nil {
		httperr.FromError(c, errNoAvatar, "avatar_required", "upload avatar")
		return
	}

	u, err := h.profile.UploadAvatar(c.Request.Context(), viewerID(c), *f)
	if err != nil {
		httperr.FromError(c, err, "avatar_upload_failed", "upload avatar")
		return
	}
	restartSession(c, h.sessions, u)
	httpresp.OK(c, u)
}

// restartSession rewrites the cookie so the navigation bar shows the new
// name and avatar straight away.
func restartSession(c *gin.Context, sessions *auth.Sessions, u *models.User) {
	sess := auth.Session{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Image:    u.Image,
	}
	if err := sessions.Start(c.Writer, c.Request, sess); err != nil {
		slog.Warn("session refresh failed", "user_id", u.ID, "error", err)
	}
}
