package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

// MemoryBucket keeps objects in process memory. It backs local development
// (STORAGE_DRIVER=memory) and tests.
type MemoryBucket struct {
	mu        sync.RWMutex
	bucket    string
	publicURL string
	objects   map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryBucket(bucket, publicURL string) *MemoryBucket {
	return &MemoryBucket{
		bucket:    bucket,
		publicURL: publicURL,
		objects:   make(map[string]memoryObject),
	}
}

func (b *MemoryBucket) Name() string { return b.bucket }

func (b *MemoryBucket) List(ctx context.Context, folder string) ([]Object, error) {
	prefix := strings.Trim(folder, "/") + "/"

	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Object
	for key, obj := range b.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.TrimPrefix(key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		out = append(out, Object{Name: name, Key: key, Size: int64(len(obj.data))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *MemoryBucket) Upload(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return gateway.Wrap("upload "+objectPath, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectPath]; exists {
		return &gateway.Error{Kind: gateway.KindConflict, Op: "upload " + objectPath, Err: fmt.Errorf("object already exists")}
	}
	b.objects[objectPath] = memoryObject{data: data, contentType: contentType}
	return nil
}

// Remove ignores paths that do not exist, like S3 DeleteObjects.
func (b *MemoryBucket) Remove(ctx context.Context, objectPaths ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range objectPaths {
		delete(b.objects, p)
	}
	return nil
}

func (b *MemoryBucket) PublicURL(objectPath string) string {
	return PublicURL(b.publicURL, b.bucket, objectPath)
}

// Open returns the stored object for serving over HTTP.
func (b *MemoryBucket) Open(objectPath string) (io.ReadSeeker, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[objectPath]
	if !ok {
		return nil, "", false
	}
	return bytes.NewReader(obj.data), obj.contentType, true
}

func (b *MemoryBucket) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

var _ Bucket = (*MemoryBucket)(nil)
