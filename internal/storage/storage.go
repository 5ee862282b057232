// Package storage talks to the object store holding cafe logos, gallery
// images and avatars.
package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
)

const (
	BucketCafeImages = "cafe-images"
	BucketAvatars    = "avatars"
)

type Object struct {
	Name string
	Key  string
	Size int64
}

type Bucket interface {
	Name() string
	// List returns the objects directly under folder, sorted by name.
	List(ctx context.Context, folder string) ([]Object, error)
	// Upload fails when an object already exists at objectPath.
	Upload(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
}

// Buckets groups the buckets the application uses.
type Buckets struct {
	CafeImages Bucket
	Avatars    Bucket
}

func Join(folder, name string) string {
	return path.Join(folder, name)
}

// PublicURL builds <base>/<bucket>/<escaped path>.
func PublicURL(base, bucket, objectPath string) string {
	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return CleanURL(strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.Join(segments, "/"))
}

func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	return parsedURL.String()
}

// IsPublicURL reports whether value is already an absolute http(s) URL
// rather than an object path.
func IsPublicURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
