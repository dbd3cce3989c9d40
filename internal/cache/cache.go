package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

const keyPrefix = "tfquiz:v1:"

// Key namespaces
const (
	KindPage = "page"
)

// Key builds a cache key for raw under the given namespace
func Key(kind, raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return keyPrefix + kind + ":" + hex.EncodeToString(hash[:])
}

// CacheKey generates the page cache key for a URL
func CacheKey(url string) string {
	return Key(KindPage, url)
}

// Page is a fetched document as stored in the cache
type Page struct {
	Body        string    `json:"body"`
	ContentType string    `json:"content_type,omitempty"`
	FinalURL    string    `json:"final_url"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// GetPage loads the cached page for url
func GetPage(c Cache, url string) (*Page, bool) {
	data, ok := c.Get(CacheKey(url))
	if !ok {
		return nil, false
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	return &page, true
}

// SetPage stores page under url
func SetPage(c Cache, url string, page *Page, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	return c.Set(CacheKey(url), data, ttl)
}
