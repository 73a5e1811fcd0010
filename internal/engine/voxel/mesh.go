package voxel

import (
	"math/bits"

	"github.com/Faultbox/kv6view/pkg/formats"
)

// faceQuad is a cube face: its normal and four corner offsets from the voxel
// center, wound so the two triangles v1,v2,v3 and v3,v4,v1 face outwards.
type faceQuad struct {
	face    Face
	normal  [3]float32
	corners [4][3]float32
}

// Render-space faces. File +Y stays +Y, file X and Z are negated, so the
// right (+X) face points to render -X and the top (-Z) face to render +Z.
var faceQuads = [...]faceQuad{
	{FaceFront, [3]float32{0, 1, 0}, [4][3]float32{
		{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5},
	}},
	{FaceBack, [3]float32{0, -1, 0}, [4][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
	}},
	{FaceTop, [3]float32{0, 0, 1}, [4][3]float32{
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}},
	{FaceBottom, [3]float32{0, 0, -1}, [4][3]float32{
		{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5},
	}},
	{FaceRight, [3]float32{-1, 0, 0}, [4][3]float32{
		{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
	}},
	{FaceLeft, [3]float32{1, 0, 0}, [4][3]float32{
		{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5},
	}},
}

// Faces lists every face in emission order.
var Faces = [...]Face{FaceFront, FaceBack, FaceTop, FaceBottom, FaceRight, FaceLeft}

// FaceNormal returns the render-space normal of a face, or zero for an
// unknown face.
func FaceNormal(f Face) [3]float32 {
	for i := range faceQuads {
		if faceQuads[i].face == f {
			return faceQuads[i].normal
		}
	}
	return [3]float32{}
}

// quadOrder expands a quad's corners into a triangle list.
var quadOrder = [VerticesPerFace]int{0, 1, 2, 2, 3, 0}

// BuildMesh creates a triangle mesh from a KV6 model.
//
// Columns are walked x-major, matching the XYEntries layout, consuming
// XYEntries[x*sizeY+y] voxels per column. Every visible face becomes six
// vertices sharing the voxel color and its table normal. Tables that run out
// early end the walk instead of failing; use KV6.Validate to reject them.
func BuildMesh(kv6 *formats.KV6, normals *formats.NormalTable) *Mesh {
	mesh := &Mesh{
		Vertices: make([]Vertex, 0, CountFaces(kv6)*VerticesPerFace),
	}

	sizeX, sizeY := int(kv6.Size[0]), int(kv6.Size[1])
	pivot := kv6.Pivot
	first := true

	cursor := 0
	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			idx := x*sizeY + y
			if idx >= len(kv6.XYEntries) {
				return finish(mesh)
			}

			for n := int(kv6.XYEntries[idx]); n > 0; n-- {
				if cursor >= len(kv6.Voxels) {
					return finish(mesh)
				}
				voxel := &kv6.Voxels[cursor]
				cursor++

				// Center the model on the pivot and flip X and Z into render space.
				center := [3]float32{
					-(float32(x) - pivot[0]),
					float32(y) - pivot[1],
					-float32(voxel.Z) - pivot[2],
				}

				emitted := emitVoxel(mesh, voxel, center, normals)
				if emitted {
					updateBounds(&mesh.Bounds, center, first)
					first = false
				}
			}
		}
	}

	return finish(mesh)
}

// emitVoxel appends the visible faces of one voxel. Returns false if none were visible.
func emitVoxel(mesh *Mesh, voxel *formats.KV6Voxel, center [3]float32, normals *formats.NormalTable) bool {
	vis := voxel.Visibility & formats.VisibleAll
	if vis == 0 {
		return false
	}

	base := Vertex{
		Normal: normals.Lookup(voxel.NormalIndex),
		Color:  voxel.Color.RGB(),
	}

	for i := range faceQuads {
		q := &faceQuads[i]
		if vis&uint8(q.face) == 0 {
			continue
		}

		v := base
		v.Face = q.normal
		for _, c := range quadOrder {
			corner := q.corners[c]
			v.Position = [3]float32{
				center[0] + corner[0],
				center[1] + corner[1],
				center[2] + corner[2],
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}
	}
	return true
}

// CountFaces returns the number of faces BuildMesh will emit for kv6.
func CountFaces(kv6 *formats.KV6) int {
	total := 0
	for i := range kv6.Voxels {
		total += bits.OnesCount8(kv6.Voxels[i].Visibility & formats.VisibleAll)
	}
	return total
}

// finish grows the voxel-center bounds by half a voxel so they enclose the faces.
func finish(mesh *Mesh) *Mesh {
	if len(mesh.Vertices) == 0 {
		return mesh
	}
	for i := 0; i < 3; i++ {
		mesh.Bounds.Min[i] -= 0.5
		mesh.Bounds.Max[i] += 0.5
	}
	return mesh
}

func updateBounds(b *Bounds, p [3]float32, first bool) {
	if first {
		b.Min = p
		b.Max = p
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
