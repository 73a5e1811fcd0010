// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Attribute locations shared by the voxel shader and the vertex layout.
const (
	PositionLocation = 0
	NormalLocation   = 1
	FaceLocation     = 2
	ColorLocation    = 3
)

// VoxelVertexShader is the vertex shader for voxel meshes.
//
//go:embed voxel.vert
var VoxelVertexShader string

// VoxelFragmentShader is the fragment shader for voxel meshes.
//
//go:embed voxel.frag
var VoxelFragmentShader string
