// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/kv6view/internal/engine/shader/shaders"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, gl.GoStr(&log[0]))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// VoxelProgram is the linked voxel shader with its uniform locations.
type VoxelProgram struct {
	ID          uint32
	Perspective int32
	View        int32
	Model       int32
	LightDir    int32
	TeamColor   int32
}

// NewVoxelProgram compiles the embedded voxel shader pair.
func NewVoxelProgram() (*VoxelProgram, error) {
	id, err := CompileProgram(shaders.VoxelVertexShader, shaders.VoxelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("voxel program: %w", err)
	}
	p := &VoxelProgram{
		ID:          id,
		Perspective: GetUniform(id, "perspective"),
		View:        GetUniform(id, "view"),
		Model:       GetUniform(id, "model"),
		LightDir:    GetUniform(id, "light_dir"),
		TeamColor:   GetUniform(id, "team_color"),
	}
	for name, loc := range map[string]int32{
		"perspective": p.Perspective,
		"view":        p.View,
		"model":       p.Model,
	} {
		if loc < 0 {
			gl.DeleteProgram(id)
			return nil, fmt.Errorf("voxel program: uniform %q not found", name)
		}
	}
	return p, nil
}

// Delete releases the program.
func (p *VoxelProgram) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
