package render_test

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/plus3/arcade/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type texture string

func (t texture) Name() string { return string(t) }

type stubLoader struct {
	calls map[string]int
}

func (l *stubLoader) Load(path string) (render.Texture, error) {
	if l.calls == nil {
		l.calls = make(map[string]int)
	}
	l.calls[path]++
	if strings.HasPrefix(path, "missing/") {
		return nil, errors.New("file not found")
	}
	return texture(path), nil
}

func TestTextureCacheLoadsOnce(t *testing.T) {
	loader := &stubLoader{}
	cache := render.NewTextureCache(loader, nil)

	first := cache.Resolve("sprites/bomb.png")
	second := cache.Resolve("sprites/bomb.png")

	require.NotNil(t, first)
	assert.Equal(t, "sprites/bomb.png", first.Name())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.calls["sprites/bomb.png"])
	assert.Empty(t, cache.Failures())
}

func TestTextureCacheFailureIsLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	loader := &stubLoader{}
	cache := render.NewTextureCache(loader, log.New(&logs, "", 0))

	assert.Nil(t, cache.Resolve("missing/heart.png"))
	assert.Nil(t, cache.Resolve("missing/heart.png"))

	assert.Equal(t, 1, loader.calls["missing/heart.png"])
	assert.Equal(t, 1, strings.Count(logs.String(), "missing/heart.png"))
	assert.Contains(t, logs.String(), "file not found")
	assert.Contains(t, cache.Failures(), "missing/heart.png")
}

func TestTextureCacheWithoutLoader(t *testing.T) {
	assert.Nil(t, render.NewTextureCache(nil, nil).Resolve("sprites/bomb.png"))

	var cache *render.TextureCache
	assert.Nil(t, cache.Resolve("sprites/bomb.png"))
}

func TestTextureCacheEmptyPath(t *testing.T) {
	loader := &stubLoader{}
	cache := render.NewTextureCache(loader, nil)

	assert.Nil(t, cache.Resolve(""))
	assert.Empty(t, loader.calls)
}
