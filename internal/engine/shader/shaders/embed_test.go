package shaders

import (
	"fmt"
	"strings"
	"testing"
)

func TestVoxelShaders_Interface(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "vertex",
			source: VoxelVertexShader,
			want: []string{
				"#version 410 core",
				fmt.Sprintf("layout (location = %d) in vec3 position", PositionLocation),
				fmt.Sprintf("layout (location = %d) in vec3 normal", NormalLocation),
				fmt.Sprintf("layout (location = %d) in vec3 face", FaceLocation),
				fmt.Sprintf("layout (location = %d) in vec3 color", ColorLocation),
				"uniform mat4 perspective",
				"uniform mat4 view",
				"uniform mat4 model",
			},
		},
		{
			name:   "fragment",
			source: VoxelFragmentShader,
			want: []string{
				"#version 410 core",
				"uniform vec3 light_dir",
				"uniform vec3 team_color",
				"vox_color / 255.0",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.source == "" {
				t.Fatal("shader source is empty")
			}
			for _, w := range tc.want {
				if !strings.Contains(tc.source, w) {
					t.Errorf("%s shader missing %q", tc.name, w)
				}
			}
		})
	}
}
