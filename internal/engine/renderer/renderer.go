// Package renderer draws voxel meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/kv6view/internal/engine/shader"
	"github.com/Faultbox/kv6view/internal/engine/shader/shaders"
	"github.com/Faultbox/kv6view/internal/engine/voxel"
	"github.com/Faultbox/kv6view/internal/logger"
	"github.com/Faultbox/kv6view/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state and the voxel shader.
type Renderer struct {
	config  Config
	program *shader.VoxelProgram
	log     *zap.Logger
}

// Model is a mesh resident on the GPU.
type Model struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// VertexCount returns the number of vertices drawn for the model.
func (m *Model) VertexCount() int {
	return int(m.vertexCount)
}

// Frame carries the per-frame uniforms shared by every model.
type Frame struct {
	Projection math.Mat4
	View       math.Mat4
	TeamColor  [3]uint8
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Counter-clockwise triangles face the viewer; clockwise ones are culled.
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.05, 0.05, 0.05, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewVoxelProgram()
	if err != nil {
		return nil, err
	}
	r.log.Debug("voxel program created", zap.Uint32("program", r.program.ID))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Upload copies a mesh into a new vertex buffer. The mesh is not retained.
func (r *Renderer) Upload(mesh *voxel.Mesh) *Model {
	m := &Model{vertexCount: int32(len(mesh.Vertices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

	stride := int32(unsafe.Sizeof(voxel.Vertex{}))
	if len(mesh.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(shaders.PositionLocation, 3, gl.FLOAT, false, stride, voxel.PositionOffset)
	gl.EnableVertexAttribArray(shaders.PositionLocation)
	gl.VertexAttribPointerWithOffset(shaders.NormalLocation, 3, gl.FLOAT, false, stride, voxel.NormalOffset)
	gl.EnableVertexAttribArray(shaders.NormalLocation)
	gl.VertexAttribPointerWithOffset(shaders.FaceLocation, 3, gl.FLOAT, false, stride, voxel.FaceOffset)
	gl.EnableVertexAttribArray(shaders.FaceLocation)
	// Bytes reach the shader as floats in 0..255.
	gl.VertexAttribPointerWithOffset(shaders.ColorLocation, 3, gl.UNSIGNED_BYTE, false, stride, voxel.ColorOffset)
	gl.EnableVertexAttribArray(shaders.ColorLocation)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", mesh.FaceCount()),
		zap.Uint32("vao", m.vao),
	)
	return m
}

// Release frees the model's GPU buffers.
func (r *Renderer) Release(m *Model) {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	m.vao, m.vbo, m.vertexCount = 0, 0, 0
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears the frame and sets the shared uniforms.
func (r *Renderer) Begin(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program.ID)
	gl.UniformMatrix4fv(r.program.Perspective, 1, false, f.Projection.Ptr())
	gl.UniformMatrix4fv(r.program.View, 1, false, f.View.Ptr())
	gl.Uniform3f(r.program.TeamColor, float32(f.TeamColor[0]), float32(f.TeamColor[1]), float32(f.TeamColor[2]))
}

// Draw draws a model placed by modelMat and lit along lightDir.
func (r *Renderer) Draw(m *Model, modelMat math.Mat4, lightDir math.Vec3) {
	if m.vertexCount == 0 {
		return
	}
	gl.UniformMatrix4fv(r.program.Model, 1, false, modelMat.Ptr())
	gl.Uniform3f(r.program.LightDir, lightDir.X, lightDir.Y, lightDir.Z)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
