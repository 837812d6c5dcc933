package render

import (
	"log"
)

// TextureCache resolves textures through a Loader once per path. Failures are logged
// once and cached as nil, so callers fall back to colour fills and the simulation
// never depends on a texture being available.
type TextureCache struct {
	loader  Loader
	logger  *log.Logger
	entries map[string]Texture
	failed  map[string]error
}

// NewTextureCache wraps loader. A nil loader resolves every path to nil.
func NewTextureCache(loader Loader, logger *log.Logger) *TextureCache {
	if logger == nil {
		logger = log.Default()
	}
	return &TextureCache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]Texture),
		failed:  make(map[string]error),
	}
}

// Resolve returns the texture for path, or nil if it cannot be loaded.
func (c *TextureCache) Resolve(path string) Texture {
	if c == nil || c.loader == nil || path == "" {
		return nil
	}
	if texture, ok := c.entries[path]; ok {
		return texture
	}
	if _, ok := c.failed[path]; ok {
		return nil
	}

	texture, err := c.loader.Load(path)
	if err != nil {
		c.failed[path] = err
		c.logger.Printf("texture %q unavailable, drawing colour fill: %v", path, err)
		return nil
	}
	c.entries[path] = texture
	return texture
}

// Failures returns the paths that could not be loaded and why.
func (c *TextureCache) Failures() map[string]error {
	return c.failed
}
