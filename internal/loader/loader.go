package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"SceneViewer/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrNoGeometry is returned for files without a single face.
var ErrNoGeometry = errors.New("no faces")

type ImportSettings struct {
	// InvertYCoord flips texture coordinates vertically (v = 1 - v).
	InvertYCoord bool
	// RecalculateNormals ignores the file's normals. Normals are always
	// generated for meshes that have none.
	RecalculateNormals bool
}

// LoadModel reads a Wavefront OBJ file and its material library. Every
// material used by the file becomes one mesh.
func LoadModel(path string, settings ImportSettings) ([]MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer file.Close()

	meshes, err := ParseOBJ(file, filepath.Dir(path), settings)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	for _, m := range meshes {
		logger.Log.Info("Loaded mesh",
			zap.String("model", path),
			zap.String("mesh", m.Name),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("triangles", len(m.Indices)/3),
			zap.Float32("boundingRadius", m.BoundingRadius))
	}
	return meshes, nil
}

type faceGroup struct {
	material string
	faces    []FaceVertex
}

// ParseOBJ decodes OBJ data. Material libraries and texture paths are
// resolved against baseDir.
func ParseOBJ(r io.Reader, baseDir string, settings ImportSettings) ([]MeshData, error) {
	var (
		positions []mgl32.Vec3
		texCoords []mgl32.Vec2
		normals   []mgl32.Vec3
		groups    []*faceGroup
		byName    = map[string]*faceGroup{}
		current   *faceGroup
		materials = map[string]MaterialDef{}
		name      string
	)

	useMaterial := func(m string) {
		if g, ok := byName[m]; ok {
			current = g
			return
		}
		current = &faceGroup{material: m}
		byName[m] = current
		groups = append(groups, current)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVec(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseVec(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseVec(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, mgl32.Vec2{v[0], v[1]})
		case "f":
			face, err := parseFace(parts[1:], len(positions), len(texCoords), len(normals))
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			if current == nil {
				useMaterial(DefaultMaterial.Name)
			}
			current.faces = append(current.faces, face...)
		case "o":
			if name == "" && len(parts) > 1 {
				name = parts[1]
			}
		case "mtllib":
			if len(parts) < 2 {
				continue
			}
			path := filepath.Join(baseDir, parts[1])
			lib, err := LoadMaterials(path)
			if err != nil {
				logger.Log.Error("Could not load material library", zap.String("path", path), zap.Error(err))
				continue
			}
			for k, v := range lib {
				materials[k] = v
			}
		case "usemtl":
			if len(parts) >= 2 {
				useMaterial(parts[1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var meshes []MeshData
	for _, g := range groups {
		if len(g.faces) == 0 {
			continue
		}
		def, ok := materials[g.material]
		if !ok {
			if g.material != DefaultMaterial.Name {
				logger.Log.Debug("Material not found", zap.String("material", g.material))
			}
			def = MaterialDef{Material: DefaultMaterial}
		}
		mesh := buildMesh(g.faces, positions, texCoords, normals, settings)
		mesh.Name = g.material
		if name != "" {
			mesh.Name = name + "/" + g.material
		}
		mesh.Material = def.Material
		mesh.Textures = append(mesh.Textures, def.Textures...)
		meshes = append(meshes, mesh)
	}
	if len(meshes) == 0 {
		return nil, ErrNoGeometry
	}
	return meshes, nil
}

// buildMesh unifies the separate OBJ index streams into one vertex per
// distinct position/texcoord/normal triple.
func buildMesh(faces []FaceVertex, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3, settings ImportSettings) MeshData {
	seen := make(map[FaceVertex]uint32, len(faces))
	var mesh MeshData
	missingNormals := false

	for _, fv := range faces {
		if idx, ok := seen[fv]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			continue
		}
		v := Vertex{Position: positions[fv.VertexIdx]}
		if fv.TexCoordIdx >= 0 {
			v.TexCoord = texCoords[fv.TexCoordIdx]
			if settings.InvertYCoord {
				v.TexCoord[1] = 1 - v.TexCoord[1]
			}
		}
		if fv.NormalIdx >= 0 {
			v.Normal = normals[fv.NormalIdx]
		} else {
			missingNormals = true
		}
		idx := uint32(len(mesh.Vertices))
		seen[fv] = idx
		mesh.Vertices = append(mesh.Vertices, v)
		mesh.Indices = append(mesh.Indices, idx)
	}

	if settings.RecalculateNormals || missingNormals {
		RecalculateNormals(mesh.Vertices, mesh.Indices)
	}
	CalculateTangents(mesh.Vertices, mesh.Indices)
	mesh.BoundingRadius = BoundingRadius(mesh.Vertices)
	return mesh
}

func parseVec(parts []string, n int) ([]float32, error) {
	if len(parts) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		out[i] = float32(val)
	}
	return out, nil
}

// FaceVertex holds zero-based indices; -1 marks an absent texcoord or normal.
type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// parseFace reads one polygon and fan-triangulates it. Negative indices
// count back from the most recent element of each stream.
func parseFace(parts []string, nv, nt, nn int) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("need at least 3 vertices, got %d", len(parts))
	}
	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")

		v, err := resolveIndex(vals[0], nv)
		if err != nil {
			return nil, fmt.Errorf("vertex index: %w", err)
		}
		vt, vn := int32(-1), int32(-1)
		if len(vals) > 1 && vals[1] != "" {
			if vt, err = resolveIndex(vals[1], nt); err != nil {
				return nil, fmt.Errorf("texture coordinate index: %w", err)
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if vn, err = resolveIndex(vals[2], nn); err != nil {
				return nil, fmt.Errorf("normal index: %w", err)
			}
		}
		face = append(face, FaceVertex{VertexIdx: v, TexCoordIdx: vt, NormalIdx: vn})
	}

	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

func resolveIndex(s string, count int) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	switch {
	case i > 0 && int(i) <= count:
		return int32(i - 1), nil
	case i < 0 && int(-i) <= count:
		return int32(count + int(i)), nil
	default:
		return 0, fmt.Errorf("index %d out of range (have %d)", i, count)
	}
}
