package cafe

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const LogoFolder = "logos"

// FolderName derives the gallery folder from a cafe name: lower case, every
// run of whitespace replaced by a single hyphen ("Brown Coffee" -> "brown-coffee").
func FolderName(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// ObjectName prefixes the uploaded file name with the upload time in
// milliseconds so repeated uploads of the same file never collide.
func ObjectName(now time.Time, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

func LogoPath(now time.Time, filename string) string {
	return LogoFolder + "/" + ObjectName(now, filename)
}

func GalleryPath(cafeName string, now time.Time, filename string) string {
	return FolderName(cafeName) + "/" + ObjectName(now, filename)
}
