package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nyasm/qasm/internal/config"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	limits := config.Default()

	a := writeSource(t, dir, "a.as", "MAIN: mov #1, r1\nstop\n")
	b := writeSource(t, dir, "b.as", "clr r1\nrts\n")

	results, err := Run(context.Background(), limits, nil, []string{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("results = %v", results)
	}

	for _, name := range []string{"a.ob", "b.ob"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	limits := config.Default()

	good := writeSource(t, dir, "good.as", "stop\n")
	bad := writeSource(t, dir, "bad.as", "L: clr r1\nL: clr r2\n")

	results, err := Run(context.Background(), limits, nil, []string{good, bad})
	if err == nil {
		t.Fatal("expected aggregate error for partial failure")
	}

	if len(results) != 2 {
		t.Fatalf("results = %v", results)
	}

	if results[0].Err != nil {
		t.Errorf("good.as unexpectedly failed: %v", results[0].Err)
	}

	if results[1].Err == nil {
		t.Error("bad.as unexpectedly succeeded")
	}

	if _, err := os.Stat(filepath.Join(dir, "good.ob")); err != nil {
		t.Errorf("expected good.ob to be written: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.ob")); err == nil {
		t.Error("bad.ob should not have been written")
	}
}

func TestRun_MissingFile(t *testing.T) {
	limits := config.Default()

	results, err := Run(context.Background(), limits, nil, []string{"/no/such/file.as"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("results = %v", results)
	}
}
