package handlers

import (
	"errors"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	domain "github.com/BruksfildServices01/ratemycafe/internal/domain/cafe"
	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
	"github.com/BruksfildServices01/ratemycafe/internal/imaging"
)

var (
	errFileTooLarge       = httperr.ErrBusinessMsg("file_too_large", "Images must be 10 MB or smaller.")
	errInvalidCoordinates = httperr.ErrBusinessMsg("invalid_coordinates", "Latitude and longitude must be numbers.")
)

// currentSession returns the signed-in user, nil when anonymous.
func currentSession(c *gin.Context) *auth.Session {
	return auth.FromContext(c.Request.Context())
}

func viewerID(c *gin.Context) string {
	if s := currentSession(c); s != nil {
		return s.UserID
	}
	return ""
}

// wantsJSON tells API callers apart from HTML form posts on routes both use.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}

// safeNext keeps post sign-in redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

// optionalFloat parses an optional numeric form field.
func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errInvalidCoordinates
	}
	return &v, nil
}

// originFromQuery reads the visitor position for distance labels. Both
// lat and lng must be present, otherwise no distance is computed.
func originFromQuery(c *gin.Context) (*domain.Point, error) {
	lat, err := optionalFloat(c.Query("lat"))
	if err != nil {
		return nil, err
	}
	lng, err := optionalFloat(c.Query("lng"))
	if err != nil {
		return nil, err
	}
	if lat == nil || lng == nil {
		return nil, nil
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return nil, errInvalidCoordinates
	}
	return &domain.Point{Lat: *lat, Lng: *lng}, nil
}

func readUpload(fh *multipart.FileHeader) (imaging.File, error) {
	if fh.Size > imaging.MaxUploadBytes {
		return imaging.File{}, errFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return imaging.File{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		return imaging.File{}, err
	}
	if len(data) > imaging.MaxUploadBytes {
		return imaging.File{}, errFileTooLarge
	}

	return imaging.File{Name: fh.Filename, Data: data}, nil
}

// optionalUpload reads the file of field, nil when none was sent.
func optionalUpload(c *gin.Context, field string) (*imaging.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}

	f, err := readUpload(fh)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// readUploads reads every file sent under field. Unreadable files are
// returned by name so the caller can report them.
func readUploads(c *gin.Context, field string) ([]imaging.File, []string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, httperr.ErrBusinessMsg("invalid_form", "Expected a multipart form.")
	}

	var (
		files  []imaging.File
		failed []string
	)
	for _, fh := range form.File[field] {
		f, err := readUpload(fh)
		if err != nil {
			failed = append(failed, fh.Filename)
			continue
		}
		files = append(files, f)
	}
	return files, failed, nil
}
