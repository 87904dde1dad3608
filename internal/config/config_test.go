package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nyasm/qasm/internal/config"
)

func TestDefault(t *testing.T) {
	limits := config.Default()

	if limits.Line.MaxLength != 80 {
		t.Errorf("max line length: got %d, want 80", limits.Line.MaxLength)
	}

	if limits.Symbol.MaxLabelLength != 30 {
		t.Errorf("max label length: got %d, want 30", limits.Symbol.MaxLabelLength)
	}

	if limits.Macro.MaxBody != 1000 {
		t.Errorf("max macro body: got %d, want 1000", limits.Macro.MaxBody)
	}

	if limits.Memory.ICStart != 100 {
		t.Errorf("ic start: got %d, want 100", limits.Memory.ICStart)
	}
}

func TestLoad_Missing(t *testing.T) {
	limits, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}

	if *limits != *config.Default() {
		t.Errorf("expected defaults, got %+v", limits)
	}
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qasm.toml")

	contents := `
[line]
max_length = 40

[macro]
max_body = 200
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	limits, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if limits.Line.MaxLength != 40 {
		t.Errorf("max line length: got %d, want 40", limits.Line.MaxLength)
	}

	if limits.Macro.MaxBody != 200 {
		t.Errorf("max macro body: got %d, want 200", limits.Macro.MaxBody)
	}

	// Fields absent from the file keep their defaults.
	if limits.Memory.ICStart != 100 {
		t.Errorf("ic start: got %d, want 100", limits.Memory.ICStart)
	}
}
