package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeKV6 writes k in KV6 layout. The tables are written as they are, so
// a model that fails Validate is encoded faithfully too.
func EncodeKV6(w io.Writer, k *KV6) error {
	buf := new(bytes.Buffer)
	buf.Grow(kv6HeaderSize + len(k.Voxels)*kv6VoxelSize + len(k.XEntries)*4 + len(k.XYEntries)*2)

	magic := k.Magic
	if magic == ([4]byte{}) {
		magic = KV6Magic
	}
	buf.Write(magic[:])

	binary.Write(buf, binary.LittleEndian, k.Size)
	binary.Write(buf, binary.LittleEndian, k.Pivot)
	binary.Write(buf, binary.LittleEndian, k.VoxelCount)

	for _, v := range k.Voxels {
		buf.Write([]byte{v.Color.B, v.Color.G, v.Color.R, v.Color.A})
		binary.Write(buf, binary.LittleEndian, v.Z)
		buf.WriteByte(v.Visibility)
		buf.WriteByte(v.NormalIndex)
	}

	binary.Write(buf, binary.LittleEndian, k.XEntries)
	binary.Write(buf, binary.LittleEndian, k.XYEntries)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing KV6 data: %w", err)
	}
	return nil
}

// WriteFile encodes the model to path, creating parent directories as needed.
func (k *KV6) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := EncodeKV6(bw, k); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing KV6 file: %w", err)
	}
	return f.Close()
}
