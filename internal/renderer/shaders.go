package renderer

import (
	"fmt"
	"os"
	"strings"

	"SceneViewer/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Shader is a linked program with cached uniform locations. A shader whose
// sources failed to build has program 0; every upload on it is a no-op.
type Shader struct {
	name     string
	program  uint32
	uniforms *UniformCache
}

// LoadShader reads, compiles and links a vertex and fragment shader pair.
// Failures are logged.
func LoadShader(vertexPath, fragmentPath string) *Shader {
	name := strings.TrimSuffix(vertexPath, ".vert")
	program, err := buildProgram(vertexPath, fragmentPath)
	if err != nil {
		logger.Log.Error("Shader unavailable", zap.String("shader", name), zap.Error(err))
	} else {
		logger.Log.Info("Shader ready", zap.String("shader", name), zap.Uint32("program", program))
	}
	return &Shader{name: name, program: program, uniforms: NewUniformCache(program)}
}

func buildProgram(vertexPath, fragmentPath string) (uint32, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, fmt.Errorf("read vertex shader: %w", err)
	}
	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("read fragment shader: %w", err)
	}

	vs, err := GenShader(string(vertexSource), gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", vertexPath, err)
	}
	fs, err := GenShader(string(fragmentSource), gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("%s: %w", fragmentPath, err)
	}
	return GenShaderProgram(vs, fs)
}

func (s *Shader) Program() uint32 { return s.program }

func (s *Shader) Use() {
	gl.UseProgram(s.program)
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	if loc := s.uniforms.Location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	if loc := s.uniforms.Location(name); loc != -1 {
		gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
	}
}

func (s *Shader) SetFloat(name string, value float32) {
	if loc := s.uniforms.Location(name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (s *Shader) SetInt(name string, value int32) {
	if loc := s.uniforms.Location(name); loc != -1 {
		gl.Uniform1i(loc, value)
	}
}

func (s *Shader) SetUint(name string, value uint32) {
	if loc := s.uniforms.Location(name); loc != -1 {
		gl.Uniform1ui(loc, value)
	}
}

func (s *Shader) Delete() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
		s.uniforms.Clear()
	}
}

// GenShader compiles one shader stage. The compile log is returned as the error.
func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00\n"))
	}
	return shader, nil
}

// GenShaderProgram links the two stages and releases them.
func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00\n"))
	}
	return program, nil
}
