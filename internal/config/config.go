package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Input    InputConfig    `toml:"input"`
	Shaders  ShadersConfig  `toml:"shaders"`
	Skybox   SkyboxConfig   `toml:"skybox"`
	Logging  LoggingConfig  `toml:"logging"`
	Scene    SceneConfig    `toml:"scene"`
	Lights   []LightConfig  `toml:"light"`
	Entities []EntityConfig `toml:"entity"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`

	// DarkTitleBar requests a dark caption where the platform supports it.
	DarkTitleBar bool `toml:"dark_title_bar"`
}

type CameraConfig struct {
	FOV      float32    `toml:"fov"` // degrees
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	FlySpeed float32    `toml:"fly_speed"` // units per second
	MaxPitch float32    `toml:"max_pitch"` // degrees
	Position mgl32.Vec3 `toml:"position"`
}

type InputConfig struct {
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
}

type ShaderPair struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

type ShadersConfig struct {
	Object    ShaderPair `toml:"object"`
	Light     ShaderPair `toml:"light"`
	Skybox    ShaderPair `toml:"skybox"`
	Selection ShaderPair `toml:"selection"`
}

type SkyboxConfig struct {
	Right  string `toml:"right"`
	Left   string `toml:"left"`
	Top    string `toml:"top"`
	Bottom string `toml:"bottom"`
	Back   string `toml:"back"`
	Front  string `toml:"front"`
}

// Faces returns the cubemap faces in GL target order (+X, -X, +Y, -Y, +Z, -Z).
func (s SkyboxConfig) Faces() [6]string {
	return [6]string{s.Right, s.Left, s.Top, s.Bottom, s.Back, s.Front}
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type SceneConfig struct {
	LightModel string `toml:"light_model"` // drawn at every light position
	// MeshCache is a directory for parsed models. Empty disables caching.
	MeshCache string `toml:"mesh_cache"`
}

type LightConfig struct {
	Position mgl32.Vec3 `toml:"position"`
	Ambient  mgl32.Vec3 `toml:"ambient"`
	Diffuse  mgl32.Vec3 `toml:"diffuse"`
	Specular mgl32.Vec3 `toml:"specular"`
}

// EntityConfig describes one scene object. Exactly one of Model and Torus
// should be set.
type EntityConfig struct {
	Name               string          `toml:"name"`
	Model              string          `toml:"model"`
	Torus              *TorusConfig    `toml:"torus"`
	InvertY            bool            `toml:"invert_y"`
	RecalculateNormals bool            `toml:"recalculate_normals"` // ignore the file's normals
	Textures           TexturesConfig  `toml:"textures"`
	Material           *MaterialConfig `toml:"material"`
	Position           mgl32.Vec3      `toml:"position"`
	Scale              mgl32.Vec3      `toml:"scale"` // zero means unscaled
	Rotate             *RotateConfig   `toml:"rotate"`
	Rotating           *RotatingConfig `toml:"rotating"`
	Locked             bool            `toml:"locked"` // not grabbable with the mouse
}

type TorusConfig struct {
	Outer float32 `toml:"outer"`
	Inner float32 `toml:"inner"`
	Rings int     `toml:"rings"`
	Sides int     `toml:"sides"`
}

type TexturesConfig struct {
	Diffuse  string `toml:"diffuse"`
	Specular string `toml:"specular"`
	Normal   string `toml:"normal"`
}

type MaterialConfig struct {
	Diffuse   mgl32.Vec3 `toml:"diffuse"`
	Specular  mgl32.Vec3 `toml:"specular"`
	Shininess float32    `toml:"shininess"`
}

// RotateConfig is a one-off local rotation applied after placement.
type RotateConfig struct {
	Degrees float32    `toml:"degrees"`
	Axis    mgl32.Vec3 `toml:"axis"`
}

type RotatingConfig struct {
	Speed  float32    `toml:"speed"` // degrees per second
	Axis   mgl32.Vec3 `toml:"axis"`
	Global bool       `toml:"global"`
}

// Load reads path over the defaults. A file that lists any [[light]] or
// [[entity]] replaces that whole list.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data over the defaults. name is used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	lights, entities := cfg.Lights, cfg.Entities
	cfg.Lights, cfg.Entities = nil, nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if !md.IsDefined("light") {
		cfg.Lights = lights
	}
	if !md.IsDefined("entity") {
		cfg.Entities = entities
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

// Default returns the built-in demo scene.
func Default() *Config { return defaults() }

// Validate rejects settings the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%g, %g] is invalid", c.Camera.Near, c.Camera.Far)
	}
	for i, e := range c.Entities {
		if (e.Model == "") == (e.Torus == nil) {
			return fmt.Errorf("entity %d (%s): exactly one of model and torus must be set", i, e.Name)
		}
		if e.Torus != nil && (e.Torus.Rings < 3 || e.Torus.Sides < 3) {
			return fmt.Errorf("entity %d (%s): torus needs at least 3 rings and sides", i, e.Name)
		}
	}
	return nil
}

func defaults() *Config {
	up, right := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Scene Viewer",
			X:      100,
			Y:      100,
		},
		Camera: CameraConfig{
			FOV:      70,
			Near:     1,
			Far:      300,
			FlySpeed: 3,
			MaxPitch: 80,
			Position: mgl32.Vec3{0, 0, 5},
		},
		Input: InputConfig{
			MouseSensitivity: 0.1,
		},
		Shaders: ShadersConfig{
			Object:    ShaderPair{"shaders/object.vert", "shaders/object.frag"},
			Light:     ShaderPair{"shaders/light.vert", "shaders/light.frag"},
			Skybox:    ShaderPair{"shaders/skybox.vert", "shaders/skybox.frag"},
			Selection: ShaderPair{"shaders/selection.vert", "shaders/selection.frag"},
		},
		Skybox: SkyboxConfig{
			Right:  "assets/skybox/sea/sea_rt.jpg",
			Left:   "assets/skybox/sea/sea_lf.jpg",
			Top:    "assets/skybox/sea/sea_up.jpg",
			Bottom: "assets/skybox/sea/sea_dn.jpg",
			Back:   "assets/skybox/sea/sea_bk.jpg",
			Front:  "assets/skybox/sea/sea_ft.jpg",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scene: SceneConfig{
			LightModel: "assets/models/ball.obj",
		},
		Lights: []LightConfig{
			{
				Position: mgl32.Vec3{10, 5, -5},
				Ambient:  mgl32.Vec3{0.2, 0.2, 0.2},
				Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
				Specular: mgl32.Vec3{1, 1, 1},
			},
			{
				Position: mgl32.Vec3{-5, -5, 0},
				Ambient:  mgl32.Vec3{0, 0, 0},
				Diffuse:  mgl32.Vec3{0.2, 0.2, 0.2},
				Specular: mgl32.Vec3{0.8, 0.8, 0.8},
			},
		},
		Entities: []EntityConfig{
			{
				Name:  "crate",
				Model: "assets/models/cube.obj",
				Textures: TexturesConfig{
					Diffuse:  "assets/models/crate_diffuse.jpg",
					Specular: "assets/models/crate_specular.jpg",
					Normal:   "assets/models/crate_normal.jpg",
				},
				Material: &MaterialConfig{Diffuse: mgl32.Vec3{1, 1, 1}, Specular: mgl32.Vec3{4, 4, 4}, Shininess: 64},
				Position: mgl32.Vec3{2, 0, 0},
				Rotating: &RotatingConfig{Speed: 10, Axis: up.Sub(right)},
			},
			{
				Name:     "ship",
				Model:    "assets/models/ship/ship.obj",
				Textures: TexturesConfig{Specular: "assets/models/ship/SF_Corvette-F3_specular.jpg"},
				Position: mgl32.Vec3{20, -5, 0},
				Rotating: &RotatingConfig{Speed: 20, Axis: up},
			},
			{
				Name:     "wall",
				Model:    "assets/models/wall/wall.obj",
				Textures: TexturesConfig{Normal: "assets/models/wall/brickwall_normal.jpg"},
				Material: &MaterialConfig{Diffuse: mgl32.Vec3{1, 1, 1}, Specular: mgl32.Vec3{3, 3, 3}, Shininess: 100},
				Position: mgl32.Vec3{10, 0, -10},
				Rotate:   &RotateConfig{Degrees: 90, Axis: right},
				// The wall's up vector once stood upright.
				Rotating: &RotatingConfig{Speed: 5, Axis: mgl32.Vec3{0, 0, 1}},
			},
			{
				Name:     "hulk",
				Model:    "assets/models/Hulk/Hulk.obj",
				InvertY:  true,
				Position: mgl32.Vec3{20, -5, 10},
			},
			{
				Name:     "torus",
				Torus:    &TorusConfig{Outer: 1, Inner: 0.8, Rings: 25, Sides: 20},
				Textures: TexturesConfig{Diffuse: "assets/models/crate_diffuse.jpg"},
				Material: &MaterialConfig{Diffuse: mgl32.Vec3{1, 1, 1}, Specular: mgl32.Vec3{4, 4, 4}, Shininess: 100},
				Position: mgl32.Vec3{-10, 0, 0},
				Rotating: &RotatingConfig{Speed: 5, Axis: right},
			},
			{
				Name:     "torus-brick",
				Torus:    &TorusConfig{Outer: 2, Inner: 1, Rings: 30, Sides: 30},
				Textures: TexturesConfig{Diffuse: "assets/models/wall/brickwall.jpg"},
				Material: &MaterialConfig{Diffuse: mgl32.Vec3{1, 1, 1}, Specular: mgl32.Vec3{4, 4, 4}, Shininess: 100},
				Position: mgl32.Vec3{-5, 0, -5},
				Rotating: &RotatingConfig{Speed: 10, Axis: up.Add(right)},
			},
		},
	}
}
