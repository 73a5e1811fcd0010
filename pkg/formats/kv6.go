package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// KV6 format errors.
var (
	ErrTruncatedKV6Data      = errors.New("truncated KV6 data")
	ErrInvalidKV6Dimensions  = errors.New("invalid KV6 dimensions")
	ErrKV6VoxelCountMismatch = errors.New("KV6 voxel count mismatch")
	ErrKV6ColumnOverflow     = errors.New("KV6 column table overflows voxel list")
)

// KV6Magic is the tag written at the start of KV6 files. The decoder does not check it.
var KV6Magic = [4]byte{'K', 'v', 'x', 'l'}

// Visibility flags of a KV6 voxel. Each bit marks an exposed face in file space.
const (
	VisibleLeft   uint8 = 1 << iota // -X
	VisibleRight                    // +X
	VisibleBack                     // -Y
	VisibleFront                    // +Y
	VisibleTop                      // -Z, KV6 heights grow downwards
	VisibleBottom                   // +Z

	VisibleAll = VisibleLeft | VisibleRight | VisibleBack | VisibleFront | VisibleTop | VisibleBottom
)

// kv6HeaderSize is the size of the fixed header including the magic.
const kv6HeaderSize = 4 + 3*4 + 3*4 + 4

// kv6VoxelSize is the on-disk size of one voxel record.
const kv6VoxelSize = 8

// KV6Color is a voxel color in file byte order.
type KV6Color struct {
	B, G, R, A uint8
}

// RGB returns the color as an RGB triple.
func (c KV6Color) RGB() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// KV6Voxel is one solid cell of a column.
type KV6Voxel struct {
	Color       KV6Color
	Z           uint16 // Height within the column
	Visibility  uint8  // Visible* face bits; unknown bits are ignored
	NormalIndex uint8  // Index into the normal table
}

// KV6 represents a decoded KV6 voxel model.
type KV6 struct {
	Magic      [4]byte
	Size       [3]uint32  // X, Y, Z extents
	Pivot      [3]float32 // Model-space origin offset
	VoxelCount uint32
	Voxels     []KV6Voxel // Ordered by x, then y, then position within the column
	XEntries   []uint32   // Per-slab voxel counts, Size[0] entries
	XYEntries  []uint16   // Per-column voxel counts, Size[0]*Size[1] entries, x major
}

// ColumnIndex returns the XYEntries index of column (x, y).
func (k *KV6) ColumnIndex(x, y int) int {
	return x*int(k.Size[1]) + y
}

// ColumnCount returns the number of voxels in column (x, y).
// Returns 0 if the column is outside the model.
func (k *KV6) ColumnCount(x, y int) int {
	if x < 0 || y < 0 || x >= int(k.Size[0]) || y >= int(k.Size[1]) {
		return 0
	}
	idx := k.ColumnIndex(x, y)
	if idx >= len(k.XYEntries) {
		return 0
	}
	return int(k.XYEntries[idx])
}

// ColumnSum returns the total of all XYEntries.
func (k *KV6) ColumnSum() uint64 {
	var sum uint64
	for _, n := range k.XYEntries {
		sum += uint64(n)
	}
	return sum
}

// SlabSums returns the per-x totals of XYEntries. For files written by the
// original tools these equal XEntries.
func (k *KV6) SlabSums() []uint32 {
	sums := make([]uint32, k.Size[0])
	for x := range sums {
		for y := 0; y < int(k.Size[1]); y++ {
			sums[x] += uint32(k.ColumnCount(x, y))
		}
	}
	return sums
}

// Validate checks the structural invariants the mesh builder relies on.
// DecodeKV6 never calls it; callers decide whether untrusted files must pass.
func (k *KV6) Validate() error {
	if k.Size[0] == 0 || k.Size[1] == 0 || k.Size[2] == 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidKV6Dimensions, k.Size[0], k.Size[1], k.Size[2])
	}
	if uint64(len(k.Voxels)) != uint64(k.VoxelCount) {
		return fmt.Errorf("%w: header says %d, decoded %d", ErrKV6VoxelCountMismatch, k.VoxelCount, len(k.Voxels))
	}
	columns := uint64(k.Size[0]) * uint64(k.Size[1])
	if uint64(len(k.XYEntries)) != columns {
		return fmt.Errorf("%w: %d column entries for %d columns", ErrKV6ColumnOverflow, len(k.XYEntries), columns)
	}
	if sum := k.ColumnSum(); sum != uint64(k.VoxelCount) {
		return fmt.Errorf("%w: columns hold %d voxels, header says %d", ErrKV6ColumnOverflow, sum, k.VoxelCount)
	}
	return nil
}

// ParseKV6 parses a KV6 file from raw bytes.
func ParseKV6(data []byte) (*KV6, error) {
	return DecodeKV6(bytes.NewReader(data))
}

// ParseKV6File parses a KV6 file from disk.
func ParseKV6File(path string) (*KV6, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading KV6 file: %w", err)
	}
	defer f.Close()

	return DecodeKV6(bufio.NewReader(f))
}

// DecodeKV6 reads a KV6 model from r. Fields are little-endian and read in
// file order; any short read fails with ErrTruncatedKV6Data. The magic and
// the consistency of the tables are not checked.
func DecodeKV6(r io.Reader) (*KV6, error) {
	kv6 := &KV6{}

	if _, err := io.ReadFull(r, kv6.Magic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic", ErrTruncatedKV6Data)
	}
	if err := binary.Read(r, binary.LittleEndian, &kv6.Size); err != nil {
		return nil, fmt.Errorf("%w: reading size", ErrTruncatedKV6Data)
	}
	if err := binary.Read(r, binary.LittleEndian, &kv6.Pivot); err != nil {
		return nil, fmt.Errorf("%w: reading pivot", ErrTruncatedKV6Data)
	}
	if err := binary.Read(r, binary.LittleEndian, &kv6.VoxelCount); err != nil {
		return nil, fmt.Errorf("%w: reading voxel count", ErrTruncatedKV6Data)
	}

	// Counts come from the file, so grow the slices as records arrive
	// instead of trusting them for the allocation.
	kv6.Voxels = make([]KV6Voxel, 0, capHint(kv6.VoxelCount))
	var rec [kv6VoxelSize]byte
	for i := uint32(0); i < kv6.VoxelCount; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: reading voxel %d", ErrTruncatedKV6Data, i)
		}
		kv6.Voxels = append(kv6.Voxels, KV6Voxel{
			Color:       KV6Color{B: rec[0], G: rec[1], R: rec[2], A: rec[3]},
			Z:           binary.LittleEndian.Uint16(rec[4:6]),
			Visibility:  rec[6],
			NormalIndex: rec[7],
		})
	}

	kv6.XEntries = make([]uint32, 0, capHint(kv6.Size[0]))
	for x := uint32(0); x < kv6.Size[0]; x++ {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: reading x entry %d", ErrTruncatedKV6Data, x)
		}
		kv6.XEntries = append(kv6.XEntries, n)
	}

	columns := uint64(kv6.Size[0]) * uint64(kv6.Size[1])
	kv6.XYEntries = make([]uint16, 0, capHint64(columns))
	for i := uint64(0); i < columns; i++ {
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: reading xy entry %d", ErrTruncatedKV6Data, i)
		}
		kv6.XYEntries = append(kv6.XYEntries, n)
	}

	return kv6, nil
}

const maxPrealloc = 1 << 16

func capHint(n uint32) int {
	return capHint64(uint64(n))
}

func capHint64(n uint64) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
