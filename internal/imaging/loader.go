package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// PageCache provides thread-safe caching of decoded drawing pages so a page
// shared by several stages (detection, OCR, notes) is read from disk once.
//
// A failed decode is the pipeline's only fatal per-drawing condition: the
// error returned by Load aborts analysis of that single drawing and must not
// abort the rest of a project batch.
//
// PageCache is safe for concurrent use by multiple goroutines. Cached pages
// remain in memory until Evict or Clear; batch callers should Clear between
// projects to bound memory growth.
type PageCache struct {
	mu    sync.RWMutex
	pages map[string]image.Image
}

// NewPageCache creates an empty page cache ready for concurrent use.
func NewPageCache() *PageCache {
	return &PageCache{
		pages: make(map[string]image.Image),
	}
}

// Load retrieves a page image from the cache or decodes it from disk.
//
// The page is cached under the exact path string provided. Supported formats
// are PNG, JPEG and GIF. A file that cannot be opened or decoded returns an
// error; callers treat this as fatal for the owning drawing only.
func (c *PageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.pages[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	c.mu.Lock()
	c.pages[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all pages from the cache, freeing the associated memory.
func (c *PageCache) Clear() {
	c.mu.Lock()
	c.pages = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific page from the cache by its path.
// If the path is not cached, Evict does nothing.
func (c *PageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.pages, path)
	c.mu.Unlock()
}
