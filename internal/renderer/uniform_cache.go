package renderer

import "github.com/go-gl/gl/v4.1-core/gl"

// UniformCache caches uniform locations to avoid repeated gl.GetUniformLocation calls
type UniformCache struct {
	locations map[string]int32
	program   uint32
	lookup    func(program uint32, name string) int32
}

// NewUniformCache creates a location cache for program.
func NewUniformCache(program uint32) *UniformCache {
	return newUniformCache(program, glUniformLocation)
}

func newUniformCache(program uint32, lookup func(uint32, string) int32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
		lookup:    lookup,
	}
}

func glUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Location returns the cached uniform location or fetches and caches it.
// Unknown names are cached as -1, which GL ignores on upload.
func (uc *UniformCache) Location(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}
	loc := int32(-1)
	if uc.program != 0 {
		loc = uc.lookup(uc.program, name)
	}
	uc.locations[name] = loc
	return loc
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
