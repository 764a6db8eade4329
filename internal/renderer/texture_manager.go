package renderer

import (
	"fmt"
	"image"

	"SceneViewer/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	Loaded      int
	CacheHits   int
	CacheMisses int
	Active      int
}

// TextureManager shares GL textures between models that use the same file.
type TextureManager struct {
	textureCache    map[string]uint32 // path -> texture ID
	textureRefCount map[uint32]int
	texturePaths    map[uint32]string
	stats           TextureStats

	upload func(path string) (uint32, error)
	free   func(id uint32)
}

// NewTextureManager creates an empty, path-keyed texture cache.
func NewTextureManager() *TextureManager {
	return newTextureManager(LoadTexture, deleteTexture)
}

func newTextureManager(upload func(string) (uint32, error), free func(uint32)) *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
		upload:          upload,
		free:            free,
	}
}

// Load returns the texture for path, uploading it on first use. Every
// successful call takes a reference.
func (tm *TextureManager) Load(path string) (uint32, error) {
	if id, ok := tm.textureCache[path]; ok {
		tm.textureRefCount[id]++
		tm.stats.CacheHits++
		logger.Log.Debug("Texture cache hit", zap.String("path", path), zap.Uint32("textureID", id))
		return id, nil
	}

	tm.stats.CacheMisses++
	id, err := tm.upload(path)
	if err != nil {
		return 0, err
	}
	tm.textureCache[path] = id
	tm.textureRefCount[id] = 1
	tm.texturePaths[id] = path
	tm.stats.Loaded++
	tm.stats.Active++
	logger.Log.Info("Texture loaded", zap.String("path", path), zap.Uint32("textureID", id))
	return id, nil
}

// Release drops one reference and frees the texture with the last one.
func (tm *TextureManager) Release(id uint32) {
	n, ok := tm.textureRefCount[id]
	if !ok {
		return
	}
	if n > 1 {
		tm.textureRefCount[id] = n - 1
		return
	}
	path := tm.texturePaths[id]
	delete(tm.textureRefCount, id)
	delete(tm.texturePaths, id)
	delete(tm.textureCache, path)
	tm.stats.Active--
	tm.free(id)
}

func (tm *TextureManager) Stats() TextureStats { return tm.stats }

// LoadTexture uploads an image file as a mipmapped, repeating 2D texture.
func LoadTexture(path string) (uint32, error) {
	rgba, err := DecodeImage(path)
	if err != nil {
		return 0, err
	}
	return uploadTexture2D(FlipVertical(rgba))
}

func uploadTexture2D(rgba *image.RGBA) (uint32, error) {
	size := rgba.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.X), int32(size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID, nil
}

func deleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}
