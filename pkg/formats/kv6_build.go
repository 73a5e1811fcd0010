package formats

// VoxelFunc reports whether cell (x, y, z) is solid and its color.
type VoxelFunc func(x, y, z int) (KV6Color, bool)

// BuildKV6 samples a dense grid into a KV6 model. Visibility bits are set for
// faces whose neighbor is empty or outside the grid, and each voxel gets the
// table normal closest to the direction away from its solid neighbors.
// The pivot is placed at the grid center.
func BuildKV6(sizeX, sizeY, sizeZ int, solid VoxelFunc) *KV6 {
	isSolid := func(x, y, z int) bool {
		if x < 0 || y < 0 || z < 0 || x >= sizeX || y >= sizeY || z >= sizeZ {
			return false
		}
		_, ok := solid(x, y, z)
		return ok
	}

	table := DefaultNormalTable()
	kv6 := &KV6{
		Magic: KV6Magic,
		Size:  [3]uint32{uint32(sizeX), uint32(sizeY), uint32(sizeZ)},
		Pivot: [3]float32{float32(sizeX) / 2, float32(sizeY) / 2, float32(sizeZ) / 2},
	}
	kv6.XEntries = make([]uint32, sizeX)
	kv6.XYEntries = make([]uint16, sizeX*sizeY)

	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			for z := 0; z < sizeZ; z++ {
				color, ok := solid(x, y, z)
				if !ok {
					continue
				}

				var vis uint8
				if !isSolid(x-1, y, z) {
					vis |= VisibleLeft
				}
				if !isSolid(x+1, y, z) {
					vis |= VisibleRight
				}
				if !isSolid(x, y-1, z) {
					vis |= VisibleBack
				}
				if !isSolid(x, y+1, z) {
					vis |= VisibleFront
				}
				if !isSolid(x, y, z-1) {
					vis |= VisibleTop
				}
				if !isSolid(x, y, z+1) {
					vis |= VisibleBottom
				}

				// Interior voxels are never drawn; keep them out of the file.
				if vis == 0 {
					continue
				}

				kv6.Voxels = append(kv6.Voxels, KV6Voxel{
					Color:       color,
					Z:           uint16(z),
					Visibility:  vis,
					NormalIndex: table.Nearest(outwardNormal(isSolid, x, y, z)),
				})
				kv6.XYEntries[x*sizeY+y]++
				kv6.XEntries[x]++
			}
		}
	}

	kv6.VoxelCount = uint32(len(kv6.Voxels))
	return kv6
}

// outwardNormal sums the directions towards empty cells in the 3x3x3
// neighborhood and converts the result to render space.
func outwardNormal(isSolid func(x, y, z int) bool, x, y, z int) [3]float32 {
	var nx, ny, nz float32
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if isSolid(x+dx, y+dy, z+dz) {
					continue
				}
				nx += float32(dx)
				ny += float32(dy)
				nz += float32(dz)
			}
		}
	}
	// Render space negates x and z.
	return [3]float32{-nx, ny, -nz}
}

// Sphere returns a VoxelFunc for a solid sphere of the given radius centered
// in a grid of edge 2*radius+1.
func Sphere(radius int, color KV6Color) VoxelFunc {
	r2 := (radius*radius + radius)
	return func(x, y, z int) (KV6Color, bool) {
		dx, dy, dz := x-radius, y-radius, z-radius
		if dx*dx+dy*dy+dz*dz <= r2 {
			return color, true
		}
		return KV6Color{}, false
	}
}

// Box returns a VoxelFunc where every cell is solid.
func Box(color KV6Color) VoxelFunc {
	return func(x, y, z int) (KV6Color, bool) {
		return color, true
	}
}
