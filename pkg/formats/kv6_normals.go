package formats

import (
	"math"
	"sync"
)

// NormalTableSize is the number of entries addressable by a voxel normal index.
const NormalTableSize = 256

// NoNormal is the normal index whose table entry is the zero vector.
const NoNormal = NormalTableSize - 1

// Golden-section spiral constants of the KV6 normal table. Points are spread
// over the sphere by stepping z linearly and the azimuth by the golden angle.
const (
	goldenRatio = 0.3819660112501052
	lutPoints   = NormalTableSize - 1
	zMul        = float32(2.0 / lutPoints)
	zAdd        = zMul*0.5 - 1.0
)

// NormalTable maps voxel normal indices to shading directions in render space.
type NormalTable [NormalTableSize][3]float32

// GenerateNormalTable builds the KV6 normal table. The result only depends on
// the index, so repeated calls return identical tables.
func GenerateNormalTable() NormalTable {
	var table NormalTable
	for i := 0; i < lutPoints; i++ {
		table[i] = normalAt(i)
	}
	table[NoNormal] = [3]float32{}
	return table
}

func normalAt(i int) [3]float32 {
	z := float32(i)*zMul + zAdd
	g := float32(i) * float32(goldenRatio*math.Pi*2.0)
	r := float32(math.Sqrt(float64(1.0 - z*z)))

	// X and Z are flipped to match render space.
	x := -float32(math.Cos(float64(g))) * r
	y := float32(math.Sin(float64(g))) * r
	return [3]float32{x, y, -z}
}

var sharedNormals = sync.OnceValue(func() *NormalTable {
	t := GenerateNormalTable()
	return &t
})

// DefaultNormalTable returns the process-wide normal table. It must not be modified.
func DefaultNormalTable() *NormalTable {
	return sharedNormals()
}

// Lookup returns the direction for idx.
func (t *NormalTable) Lookup(idx uint8) [3]float32 {
	return t[idx]
}

// Nearest returns the index whose direction is closest to dir (render space).
// A zero dir yields NoNormal.
func (t *NormalTable) Nearest(dir [3]float32) uint8 {
	if dir == ([3]float32{}) {
		return NoNormal
	}

	best := NoNormal
	bestDot := float32(math.Inf(-1))
	for i := 0; i < lutPoints; i++ {
		n := t[i]
		d := n[0]*dir[0] + n[1]*dir[1] + n[2]*dir[2]
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	return uint8(best)
}
