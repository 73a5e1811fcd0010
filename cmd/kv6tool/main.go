// kv6tool is a CLI utility for inspecting and generating KV6 voxel models.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/kv6view/internal/config"
	"github.com/Faultbox/kv6view/internal/engine/voxel"
	"github.com/Faultbox/kv6view/pkg/formats"
)

// errInvalid marks a validate run where at least one file failed.
var errInvalid = errors.New("invalid models found")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, out)
	case "validate", "check":
		return cmdValidate(args, out)
	case "mesh":
		return cmdMesh(args, out)
	case "normals":
		return cmdNormals(args, out)
	case "gen", "generate":
		return cmdGen(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `kv6tool - KV6 voxel model utility

Usage:
  kv6tool <command> [options]

Commands:
  info <file.kv6>                      Show header and column statistics
  validate <file.kv6>...               Check structural consistency
  mesh <file.kv6>                      Show mesh statistics
  normals [-n count]                   Dump the normal table
  gen [-shape cube|sphere] [-size n] [-color r,g,b] <out.kv6>
                                       Write a synthetic model

Examples:
  kv6tool info tank.kv6
  kv6tool validate models/*.kv6
  kv6tool gen -shape sphere -size 9 -color 255,200,0 ball.kv6`)
}

func cmdInfo(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: kv6tool info <file.kv6>")
	}

	kv6, err := formats.ParseKV6File(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File:    %s\n", args[0])
	fmt.Fprintf(out, "Magic:   %q\n", string(kv6.Magic[:]))
	fmt.Fprintf(out, "Size:    %d x %d x %d\n", kv6.Size[0], kv6.Size[1], kv6.Size[2])
	fmt.Fprintf(out, "Pivot:   %.2f, %.2f, %.2f\n", kv6.Pivot[0], kv6.Pivot[1], kv6.Pivot[2])
	fmt.Fprintf(out, "Voxels:  %d\n", kv6.VoxelCount)
	fmt.Fprintf(out, "Columns: %d (sum %d)\n", len(kv6.XYEntries), kv6.ColumnSum())

	// Slab counts are not used for meshing; report whether they agree.
	slabs := kv6.SlabSums()
	mismatched := 0
	for x, sum := range slabs {
		if x < len(kv6.XEntries) && kv6.XEntries[x] != sum {
			mismatched++
		}
	}
	if mismatched == 0 {
		fmt.Fprintln(out, "Slabs:   consistent")
	} else {
		fmt.Fprintf(out, "Slabs:   %d of %d disagree with columns\n", mismatched, len(slabs))
	}

	colors := make(map[formats.KV6Color]int)
	team := 0
	for _, v := range kv6.Voxels {
		c := v.Color
		c.A = 0
		colors[c]++
		if v.Color.RGB() == [3]uint8{} {
			team++
		}
	}
	fmt.Fprintf(out, "Colors:  %d distinct, %d team-colored voxels\n", len(colors), team)
	fmt.Fprintf(out, "Faces:   %d visible\n", voxel.CountFaces(kv6))

	return nil
}

func cmdValidate(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: kv6tool validate <file.kv6>...")
	}

	failed := 0
	for _, path := range args {
		kv6, err := formats.ParseKV6File(path)
		if err == nil {
			err = kv6.Validate()
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, failed, len(args))
	}
	return nil
}

func cmdMesh(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: kv6tool mesh <file.kv6>")
	}

	kv6, err := formats.ParseKV6File(args[0])
	if err != nil {
		return err
	}
	if err := kv6.Validate(); err != nil {
		return err
	}

	mesh := voxel.BuildMesh(kv6, formats.DefaultNormalTable())

	perFace := make(map[voxel.Face]int)
	for i := 0; i < len(mesh.Vertices); i += voxel.VerticesPerFace {
		perFace[faceOf(mesh.Vertices[i].Face)]++
	}

	b := mesh.Bounds
	fmt.Fprintf(out, "Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(out, "Triangles: %d\n", len(mesh.Vertices)/3)
	fmt.Fprintf(out, "Faces:     %d\n", mesh.FaceCount())
	for _, f := range voxel.Faces {
		fmt.Fprintf(out, "  %-7s %d\n", f, perFace[f])
	}
	fmt.Fprintf(out, "Bounds:    (%.1f, %.1f, %.1f) - (%.1f, %.1f, %.1f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])

	return nil
}

// faceOf maps a face normal back to its face.
func faceOf(n [3]float32) voxel.Face {
	for _, f := range voxel.Faces {
		if voxel.FaceNormal(f) == n {
			return f
		}
	}
	return 0
}

func cmdNormals(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("normals", flag.ContinueOnError)
	fs.SetOutput(out)
	count := fs.Int("n", formats.NormalTableSize, "Number of entries to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table := formats.DefaultNormalTable()
	n := min(max(*count, 0), formats.NormalTableSize)
	for i := 0; i < n; i++ {
		v := table[i]
		fmt.Fprintf(out, "%3d  % .6f  % .6f  % .6f\n", i, v[0], v[1], v[2])
	}
	return nil
}

func cmdGen(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(out)
	shape := fs.String("shape", "cube", "Shape: cube or sphere")
	size := fs.Int("size", 8, "Edge length in voxels (sphere: diameter)")
	colorFlag := fs.String("color", "128,128,128", "Voxel color r,g,b (0,0,0 is team color)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: kv6tool gen [options] <out.kv6>")
	}
	if *size < 1 || *size > 256 {
		return fmt.Errorf("size %d out of range 1..256", *size)
	}

	rgb, err := config.ParseColor(*colorFlag)
	if err != nil {
		return err
	}
	color := formats.KV6Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 128}

	var kv6 *formats.KV6
	switch *shape {
	case "cube":
		kv6 = formats.BuildKV6(*size, *size, *size, formats.Box(color))
	case "sphere":
		radius := *size / 2
		edge := 2*radius + 1
		kv6 = formats.BuildKV6(edge, edge, edge, formats.Sphere(radius, color))
	default:
		return fmt.Errorf("unknown shape %q", *shape)
	}

	path := fs.Arg(0)
	if err := kv6.WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s: %d x %d x %d, %d voxels\n", path, kv6.Size[0], kv6.Size[1], kv6.Size[2], kv6.VoxelCount)
	return nil
}
