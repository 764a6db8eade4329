package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"SceneViewer/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// MaterialDef is one newmtl block: colours plus the texture maps it names.
type MaterialDef struct {
	Material
	Textures []TextureRef
}

// LoadMaterials reads a .mtl file. Texture paths are made relative to the
// file's directory.
func LoadMaterials(path string) (map[string]MaterialDef, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open material library %s: %w", path, err)
	}
	defer file.Close()
	return ParseMaterials(file, filepath.Dir(path))
}

// ParseMaterials decodes an MTL library keyed by material name.
func ParseMaterials(r io.Reader, baseDir string) (map[string]MaterialDef, error) {
	materials := make(map[string]MaterialDef)
	var current *MaterialDef
	flush := func() {
		if current != nil {
			materials[current.Name] = *current
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("line", line))
				continue
			}
			flush()
			current = &MaterialDef{Material: DefaultMaterial}
			current.Name = fields[1]
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if c, err := parseVec(fields[1:], 3); err == nil {
				current.Diffuse = mgl32.Vec3{c[0], c[1], c[2]}
			}
		case "Ks":
			if c, err := parseVec(fields[1:], 3); err == nil {
				current.Specular = mgl32.Vec3{c[0], c[1], c[2]}
			}
		case "Ns":
			if s, err := parseVec(fields[1:], 1); err == nil {
				current.Shininess = s[0]
			}
		case "map_Kd":
			current.addTexture(TextureDiffuse, fields, baseDir)
		case "map_Ks":
			current.addTexture(TextureSpecular, fields, baseDir)
		case "map_Bump", "map_bump", "bump", "norm":
			// OBJ exporters store normal maps as bump maps.
			current.addTexture(TextureNormal, fields, baseDir)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return materials, nil
}

// addTexture records a map statement. Options such as -bm come before the
// file name, so the path is the last field.
func (d *MaterialDef) addTexture(kind TextureKind, fields []string, baseDir string) {
	if len(fields) < 2 {
		return
	}
	path := fields[len(fields)-1]
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	for _, t := range d.Textures {
		if t.Kind == kind && t.Path == path {
			return
		}
	}
	d.Textures = append(d.Textures, TextureRef{Kind: kind, Path: path})
}
