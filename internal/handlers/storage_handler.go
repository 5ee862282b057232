package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

// StorageHandler serves the in-memory buckets at their public URLs when
// STORAGE_DRIVER=memory.
type StorageHandler struct {
	buckets map[string]*storage.MemoryBucket
}

func NewStorageHandler(buckets ...*storage.MemoryBucket) *StorageHandler {
	h := &StorageHandler{buckets: make(map[string]*storage.MemoryBucket, len(buckets))}
	for _, b := range buckets {
		h.buckets[b.Name()] = b
	}
	return h
}

// GET /storage/:bucket/*path
func (h *StorageHandler) Serve(c *gin.Context) {
	b, ok := h.buckets[c.Param("bucket")]
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	objectPath := strings.TrimPrefix(c.Param("path"), "/")
	body, contentType, ok := b.Open(objectPath)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")
	http.ServeContent(c.Writer, c.Request, objectPath, time.Time{}, body)
}
