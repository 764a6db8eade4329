package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkyboxCubeCoversEveryFace(t *testing.T) {
	require.Len(t, SkyboxIndices, 36)
	for _, i := range SkyboxIndices {
		require.Less(t, int(i), len(SkyboxVertices)/3)
	}

	// Each face is two triangles sharing one constant coordinate.
	faces := map[[2]int]bool{}
	for tri := 0; tri < 12; tri++ {
		for axis := 0; axis < 3; axis++ {
			first := SkyboxVertices[SkyboxIndices[tri*3]*3+uint32(axis)]
			same := true
			for k := 1; k < 3; k++ {
				if SkyboxVertices[SkyboxIndices[tri*3+k]*3+uint32(axis)] != first {
					same = false
				}
			}
			if same {
				faces[[2]int{axis, int(first)}] = true
			}
		}
	}
	assert.Len(t, faces, 6)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{B: 200, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestDecodeFacesMatchesFirstFaceSize(t *testing.T) {
	dir := t.TempDir()
	var faces [6]string
	for i := range faces {
		faces[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		size := 4
		if i == 3 {
			size = 8
		}
		writePNG(t, faces[i], size, size)
	}

	images, err := decodeFaces(faces)
	require.NoError(t, err)
	for _, img := range images {
		assert.Equal(t, image.Pt(4, 4), img.Rect.Size())
	}
}

func TestDecodeFacesReportsMissingFace(t *testing.T) {
	dir := t.TempDir()
	var faces [6]string
	for i := range faces {
		faces[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		if i != 2 {
			writePNG(t, faces[i], 2, 2)
		}
	}

	_, err := decodeFaces(faces)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cubemap face 2")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
