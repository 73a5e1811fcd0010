package formats

import "testing"

func TestBuildKV6_SingleVoxel(t *testing.T) {
	color := KV6Color{R: 255, G: 128, B: 0, A: 128}
	kv6 := BuildKV6(1, 1, 1, Box(color))

	if kv6.VoxelCount != 1 || len(kv6.Voxels) != 1 {
		t.Fatalf("expected 1 voxel, got %d", kv6.VoxelCount)
	}
	v := kv6.Voxels[0]
	if v.Visibility != VisibleAll {
		t.Errorf("expected all faces visible, got %06b", v.Visibility)
	}
	if v.Color != color {
		t.Errorf("expected color %+v, got %+v", color, v.Color)
	}
	// Fully surrounded by air: the outward directions cancel out.
	if v.NormalIndex != NoNormal {
		t.Errorf("expected normal index %d, got %d", NoNormal, v.NormalIndex)
	}
	if kv6.Pivot != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("expected centered pivot, got %v", kv6.Pivot)
	}
}

func TestBuildKV6_SkipsInterior(t *testing.T) {
	kv6 := BuildKV6(3, 3, 3, Box(KV6Color{A: 128}))

	// 27 cells minus the hidden center.
	if kv6.VoxelCount != 26 {
		t.Fatalf("expected 26 surface voxels, got %d", kv6.VoxelCount)
	}
	if err := kv6.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// The middle column has only its top and bottom voxel.
	if got := kv6.ColumnCount(1, 1); got != 2 {
		t.Errorf("center column: expected 2 voxels, got %d", got)
	}

	for i, sum := range kv6.SlabSums() {
		if kv6.XEntries[i] != sum {
			t.Errorf("x entry %d = %d, slab sum %d", i, kv6.XEntries[i], sum)
		}
	}
}

func TestBuildKV6_ColumnOrder(t *testing.T) {
	kv6 := BuildKV6(2, 2, 4, func(x, y, z int) (KV6Color, bool) {
		return KV6Color{R: uint8(x), G: uint8(y), B: uint8(z)}, z%2 == 0
	})

	// Voxels must come x-major, then y, then ascending z.
	prev := -1
	for _, v := range kv6.Voxels {
		key := int(v.Color.R)*100 + int(v.Color.G)*10 + int(v.Z)
		if key <= prev {
			t.Fatalf("voxels out of order at %+v", v)
		}
		prev = key
	}
}

func TestBuildKV6_SphereNormals(t *testing.T) {
	kv6 := BuildKV6(5, 5, 5, Sphere(2, KV6Color{A: 128}))
	table := DefaultNormalTable()

	// The highest voxel of the center column (smallest z) is the sphere's top.
	// KV6 heights grow downwards and render z is negated, so its normal
	// must point towards render +z.
	var top *KV6Voxel
	offset := 0
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			n := kv6.ColumnCount(x, y)
			if x == 2 && y == 2 {
				top = &kv6.Voxels[offset]
			}
			offset += n
		}
	}
	if top == nil {
		t.Fatal("center column missing")
	}
	if top.Visibility&VisibleTop == 0 {
		t.Errorf("top voxel should expose its top face, got %06b", top.Visibility)
	}
	if n := table.Lookup(top.NormalIndex); n[2] < 0.9 {
		t.Errorf("top voxel normal %v should point to +z", n)
	}
}
