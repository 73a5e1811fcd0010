package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/kv6view/pkg/formats"
)

func runTool(t *testing.T, command string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(command, args, &out)
	return out.String(), err
}

func TestGenInfoMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.kv6")

	out, err := runTool(t, "gen", "-size", "3", "-color", "0,0,0", path)
	if err != nil {
		t.Fatalf("gen failed: %v", err)
	}
	// 27 cells minus the hidden center.
	if !strings.Contains(out, "26 voxels") {
		t.Errorf("gen output = %q", out)
	}

	out, err = runTool(t, "info", path)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{
		"Size:    3 x 3 x 3",
		"Voxels:  26",
		"Slabs:   consistent",
		"26 team-colored voxels",
		"Faces:   54 visible",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	out, err = runTool(t, "mesh", path)
	if err != nil {
		t.Fatalf("mesh failed: %v", err)
	}
	for _, want := range []string{
		"Vertices:  324",
		"Faces:     54",
		"front   9",
		"left    9",
		"Bounds:    (-1.0, -2.0, -4.0) - (2.0, 1.0, -1.0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("mesh output missing %q:\n%s", want, out)
		}
	}
}

func TestGenSphere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.kv6")
	if _, err := runTool(t, "gen", "-shape", "sphere", "-size", "5", path); err != nil {
		t.Fatalf("gen failed: %v", err)
	}
	kv6, err := formats.ParseKV6File(path)
	if err != nil {
		t.Fatalf("reading generated sphere: %v", err)
	}
	if kv6.Size != [3]uint32{5, 5, 5} {
		t.Errorf("sphere size = %v, want 5x5x5", kv6.Size)
	}
	if err := kv6.Validate(); err != nil {
		t.Errorf("generated sphere invalid: %v", err)
	}
}

func TestGenErrors(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"-shape", "torus", filepath.Join(dir, "a.kv6")},
		{"-size", "0", filepath.Join(dir, "b.kv6")},
		{"-color", "red", filepath.Join(dir, "c.kv6")},
		{},
	}
	for _, args := range tests {
		if _, err := runTool(t, "gen", args...); err == nil {
			t.Errorf("gen %v: expected error", args)
		}
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.kv6")
	if _, err := runTool(t, "gen", "-size", "2", good); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.kv6")
	if err := os.WriteFile(bad, []byte("Kvxl"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runTool(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.HasPrefix(out, "ok") {
		t.Errorf("validate output = %q", out)
	}

	out, err = runTool(t, "validate", good, bad)
	if !errors.Is(err, errInvalid) {
		t.Errorf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(out, "FAIL "+bad) {
		t.Errorf("validate output missing failure:\n%s", out)
	}
}

func TestNormals(t *testing.T) {
	out, err := runTool(t, "normals", "-n", "3")
	if err != nil {
		t.Fatalf("normals failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("expected 3 lines, got %d:\n%s", lines, out)
	}

	out, err = runTool(t, "normals")
	if err != nil {
		t.Fatalf("normals failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != formats.NormalTableSize {
		t.Errorf("expected %d lines, got %d", formats.NormalTableSize, lines)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := runTool(t, "explode"); err == nil {
		t.Error("expected error for unknown command")
	}
}
