package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshEncodingRoundTrip(t *testing.T) {
	textured := Torus(1, 0.5, 4, 3)
	textured.Name = "ring"
	textured.Textures = []TextureRef{{Kind: TextureNormal, Path: "maps/ring_normal.png"}}
	textured.Material = Material{Name: "brass", Shininess: 32}
	meshes := []MeshData{textured, {Name: "empty"}}

	var buf bytes.Buffer
	require.NoError(t, EncodeMeshes(&buf, meshes))

	decoded, err := DecodeMeshes(&buf)
	require.NoError(t, err)
	assert.Equal(t, meshes, decoded)
}

func TestDecodeMeshesRejectsForeignData(t *testing.T) {
	_, err := DecodeMeshes(bytes.NewReader([]byte("v 0 0 0\n")))
	assert.ErrorIs(t, err, ErrBadMeshFile)
}

func TestDecodeMeshesRejectsTruncatedData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMeshes(&buf, []MeshData{Torus(1, 0.5, 8, 8)}))
	data := buf.Bytes()

	_, err := DecodeMeshes(bytes.NewReader(data[:len(data)/2]))
	assert.Error(t, err)
}

func TestMeshCacheReusesEntryUntilSourceChanges(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(source, []byte(quadOBJ), 0o644))
	cache := &MeshCache{Dir: filepath.Join(dir, "cache")}

	first, err := cache.Load(source, ImportSettings{})
	require.NoError(t, err)
	entries, err := os.ReadDir(cache.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Replace the geometry but keep the source older than the entry.
	triangle := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(source, []byte(triangle), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(source, past, past))

	cached, err := cache.Load(source, ImportSettings{})
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(source, future, future))

	fresh, err := cache.Load(source, ImportSettings{})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Len(t, fresh[0].Vertices, 3)
}

func TestMeshCacheKeysOnImportSettings(t *testing.T) {
	cache := &MeshCache{Dir: "cache"}
	a := cache.entry("model.obj", ImportSettings{})
	b := cache.entry("model.obj", ImportSettings{InvertYCoord: true})
	c := cache.entry("model.obj", ImportSettings{RecalculateNormals: true})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
	assert.Equal(t, a, cache.entry("model.obj", ImportSettings{}))
}

func TestMeshCacheMissingSource(t *testing.T) {
	cache := &MeshCache{Dir: t.TempDir()}
	_, err := cache.Load(filepath.Join(t.TempDir(), "missing.obj"), ImportSettings{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
