// Package voxel builds renderable triangle meshes from KV6 voxel models.
package voxel

import "github.com/Faultbox/kv6view/pkg/formats"

// Vertex is one mesh vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32 // Render space
	Normal   [3]float32 // Smooth shading normal from the normal table
	Face     [3]float32 // Axis-aligned normal of the quad this vertex belongs to
	Color    [3]uint8   // 0-255, black marks team-colored voxels
}

// Vertex attribute layout for interleaved upload.
const (
	PositionOffset = 0
	NormalOffset   = 3 * 4
	FaceOffset     = 6 * 4
	ColorOffset    = 9 * 4
)

// VerticesPerFace is the number of vertices emitted per visible face
// (two non-indexed triangles).
const VerticesPerFace = 6

// Face identifies one side of a voxel by its visibility bit.
type Face uint8

// Faces in the order BuildMesh emits them.
const (
	FaceFront  = Face(formats.VisibleFront)
	FaceBack   = Face(formats.VisibleBack)
	FaceTop    = Face(formats.VisibleTop)
	FaceBottom = Face(formats.VisibleBottom)
	FaceRight  = Face(formats.VisibleRight)
	FaceLeft   = Face(formats.VisibleLeft)
)

// Mesh holds the triangle list built from a model.
type Mesh struct {
	Vertices []Vertex
	Bounds   Bounds
}

// FaceCount returns the number of quads in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Vertices) / VerticesPerFace
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

var faceNames = map[Face]string{
	FaceFront:  "front",
	FaceBack:   "back",
	FaceTop:    "top",
	FaceBottom: "bottom",
	FaceRight:  "right",
	FaceLeft:   "left",
}

func (f Face) String() string {
	if name, ok := faceNames[f]; ok {
		return name
	}
	return "unknown"
}
