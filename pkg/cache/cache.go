// Package cache provides a small file-based artifact cache.
//
// Rendering SVG is cheap, but PNG and PDF conversion shells out to
// rsvg-convert. The cache keys converted artifacts by a hash of the SVG
// bytes and the conversion parameters, so repeated exports of an unchanged
// figure skip the external tool.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads by key.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey generates the cache key for a converted render artifact.
// The key covers the SVG content and every parameter that changes the
// conversion output.
func ArtifactKey(svg []byte, format string, scale float64) string {
	return hashKey("artifact", Hash(svg), format, scale)
}
