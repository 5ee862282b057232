// Package imaging checks that uploads are real images and optionally
// re-encodes them to WebP.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

const (
	MaxUploadBytes = 10 << 20
	WebPQuality    = 80
)

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

type Info struct {
	Format      string
	ContentType string
	Width       int
	Height      int
}

// Inspect decodes only the image header.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, httperr.ErrBusinessMsg("empty_file", "The selected file is empty.")
	}
	if len(data) > MaxUploadBytes {
		return Info{}, httperr.ErrBusinessMsg("file_too_large", "Images must be 10 MB or smaller.")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, httperr.ErrBusinessMsg("not_an_image", "The selected file is not a supported image.")
	}
	ct, ok := contentTypes[format]
	if !ok {
		return Info{}, httperr.ErrBusinessMsg("not_an_image", "The selected file is not a supported image.")
	}

	return Info{Format: format, ContentType: ct, Width: cfg.Width, Height: cfg.Height}, nil
}

// ToWebP re-encodes data as lossy WebP.
func ToWebP(data []byte, quality float32) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPName swaps the extension of name for .webp.
func WebPName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
}

// File is an uploaded file held in memory.
type File struct {
	Name string
	Data []byte
}

// Prepared is a validated upload ready to be stored.
type Prepared struct {
	Name        string
	Data        []byte
	ContentType string
}

// Prepare validates f and, when toWebP is set, re-encodes it as WebP. A
// failed re-encode keeps the original bytes.
func Prepare(f File, toWebP bool) (Prepared, error) {
	info, err := Inspect(f.Data)
	if err != nil {
		return Prepared{}, err
	}

	p := Prepared{Name: f.Name, Data: f.Data, ContentType: info.ContentType}
	if !toWebP || info.Format == "webp" {
		return p, nil
	}

	converted, err := ToWebP(f.Data, WebPQuality)
	if err != nil {
		slog.Warn("webp conversion failed, keeping original", "file", f.Name, "error", err)
		return p, nil
	}
	return Prepared{Name: WebPName(f.Name), Data: converted, ContentType: "image/webp"}, nil
}
