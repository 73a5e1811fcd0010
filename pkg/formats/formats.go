// Package formats reads and writes KV6 voxel models.
//
// A KV6 file is a little-endian header (magic, size, pivot, voxel count)
// followed by the surface voxels column by column, per-slab counts and
// per-column counts. Only surface voxels are stored; each carries its color,
// height, visible-face bits and an index into a fixed normal table.
package formats
