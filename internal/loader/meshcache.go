package loader

import (
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"SceneViewer/internal/logger"

	"go.uber.org/zap"
)

const (
	meshMagic   uint32 = 0x4D455348 // "MESH"
	meshVersion uint32 = 2
)

var ErrBadMeshFile = errors.New("not a mesh cache file")

// EncodeMeshes writes meshes in the gzip-compressed binary cache format.
func EncodeMeshes(w io.Writer, meshes []MeshData) error {
	gz := gzip.NewWriter(w)
	bw := &binWriter{w: gz}
	bw.write(meshMagic)
	bw.write(meshVersion)
	bw.write(uint32(len(meshes)))
	for i := range meshes {
		m := &meshes[i]
		bw.string(m.Name)
		bw.write(uint32(len(m.Vertices)))
		bw.write(m.Vertices)
		bw.write(uint32(len(m.Indices)))
		bw.write(m.Indices)
		bw.write(uint32(len(m.Textures)))
		for _, t := range m.Textures {
			bw.write(uint8(t.Kind))
			bw.string(t.Path)
		}
		bw.string(m.Material.Name)
		bw.write(m.Material.Diffuse)
		bw.write(m.Material.Specular)
		bw.write(m.Material.Shininess)
		bw.write(m.BoundingRadius)
	}
	if bw.err != nil {
		return bw.err
	}
	return gz.Close()
}

// DecodeMeshes reads data written by EncodeMeshes.
func DecodeMeshes(r io.Reader) ([]MeshData, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMeshFile, err)
	}
	defer gz.Close()

	br := &binReader{r: gz}
	var magic, version, count uint32
	br.read(&magic)
	br.read(&version)
	if br.err != nil {
		return nil, br.err
	}
	if magic != meshMagic {
		return nil, fmt.Errorf("%w: magic %x", ErrBadMeshFile, magic)
	}
	if version != meshVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadMeshFile, version)
	}

	br.read(&count)
	meshes := make([]MeshData, 0, br.capped(count))
	for i := uint32(0); i < count && br.err == nil; i++ {
		var m MeshData
		m.Name = br.string()
		if n := br.count(); n > 0 {
			m.Vertices = make([]Vertex, n)
			br.read(m.Vertices)
		}
		if n := br.count(); n > 0 {
			m.Indices = make([]uint32, n)
			br.read(m.Indices)
		}
		if n := br.count(); n > 0 {
			m.Textures = make([]TextureRef, n)
		}
		for j := range m.Textures {
			var kind uint8
			br.read(&kind)
			m.Textures[j] = TextureRef{Kind: TextureKind(kind), Path: br.string()}
		}
		m.Material.Name = br.string()
		br.read(&m.Material.Diffuse)
		br.read(&m.Material.Specular)
		br.read(&m.Material.Shininess)
		br.read(&m.BoundingRadius)
		meshes = append(meshes, m)
	}
	if br.err != nil {
		return nil, fmt.Errorf("decode meshes: %w", br.err)
	}
	return meshes, nil
}

// binWriter keeps the first error and skips every write after it.
type binWriter struct {
	w   io.Writer
	err error
}

func (b *binWriter) write(v interface{}) {
	if b.err == nil {
		b.err = binary.Write(b.w, binary.LittleEndian, v)
	}
}

func (b *binWriter) string(s string) {
	b.write(uint32(len(s)))
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
}

type binReader struct {
	r   io.Reader
	err error
}

// A corrupt length must not allocate gigabytes.
const maxCacheElements = 1 << 26

func (b *binReader) read(v interface{}) {
	if b.err == nil {
		b.err = binary.Read(b.r, binary.LittleEndian, v)
	}
}

func (b *binReader) count() int {
	var n uint32
	b.read(&n)
	return b.capped(n)
}

func (b *binReader) capped(n uint32) int {
	if n > maxCacheElements {
		if b.err == nil {
			b.err = fmt.Errorf("%w: length %d", ErrBadMeshFile, n)
		}
		return 0
	}
	return int(n)
}

func (b *binReader) string() string {
	buf := make([]byte, b.count())
	if b.err == nil {
		_, b.err = io.ReadFull(b.r, buf)
	}
	return string(buf)
}

// MeshCache stores parsed models under Dir so later runs skip OBJ parsing.
// An entry is used while it is newer than its source file.
type MeshCache struct {
	Dir string
}

// Load returns the cached meshes for path, parsing and caching the model
// on a miss. Failing to write the cache is logged and does not fail the load.
func (c *MeshCache) Load(path string, settings ImportSettings) ([]MeshData, error) {
	entry := c.entry(path, settings)
	if meshes, ok := c.read(path, entry); ok {
		logger.Log.Debug("Mesh cache hit", zap.String("model", path), zap.String("entry", entry))
		return meshes, nil
	}

	meshes, err := LoadModel(path, settings)
	if err != nil {
		return nil, err
	}
	if err := c.write(entry, meshes); err != nil {
		logger.Log.Warn("Could not write mesh cache", zap.String("entry", entry), zap.Error(err))
	}
	return meshes, nil
}

func (c *MeshCache) entry(path string, settings ImportSettings) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%t|%t", abs, settings.InvertYCoord, settings.RecalculateNormals)))
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:])+".mesh.gz")
}

func (c *MeshCache) read(source, entry string) ([]MeshData, bool) {
	src, err := os.Stat(source)
	if err != nil {
		return nil, false
	}
	cached, err := os.Stat(entry)
	if err != nil || cached.ModTime().Before(src.ModTime()) {
		return nil, false
	}
	f, err := os.Open(entry)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	meshes, err := DecodeMeshes(f)
	if err != nil {
		logger.Log.Warn("Discarding mesh cache entry", zap.String("entry", entry), zap.Error(err))
		return nil, false
	}
	return meshes, true
}

func (c *MeshCache) write(entry string, meshes []MeshData) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeMeshes(&buf, meshes); err != nil {
		return err
	}
	tmp := entry + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, entry)
}
