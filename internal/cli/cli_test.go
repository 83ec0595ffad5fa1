package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/chromaset/internal/catalog"
	"github.com/jmylchreest/chromaset/internal/cli"
	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/store"
)

// writeCatalog writes a catalog of vivid colours spread around the hue
// circle and returns its path.
func writeCatalog(t *testing.T, dir string) string {
	t.Helper()

	categories := []string{"红", "橙", "黄", "绿", "青", "蓝", "紫"}
	var b strings.Builder
	b.WriteString("name_ch,name,hex,category_ch\n")
	for i := 0; i < 240; i++ {
		h := float64(i) * 1.5
		s := []float64{0.7, 0.8}[i%2]
		rgb := hsv(h, s, 0.75)
		fmt.Fprintf(&b, "色%d,se%d,%s,%s\n", i, i, rgb.Hex(), categories[int(h/60)%len(categories)])
	}

	path := filepath.Join(dir, "colours.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func hsv(h, s, v float64) colour.RGB {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return colour.RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CHROMASET_CONFIG", "")
	t.Setenv("CHROMASET_SET_PREFIX", "")

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir)

	csvPath := filepath.Join(dir, "out", "colours.csv")
	jsonPath := filepath.Join(dir, "out", "palettes.json")
	dbPath := filepath.Join(dir, "out", "chromaset.db")
	swatchDir := filepath.Join(dir, "out", "swatches")

	stdout, stderr, err := run(t, "build", catalogPath,
		"--sizes", "16,32",
		"--csv", csvPath,
		"--json", jsonPath,
		"--db", dbPath,
		"--swatches", swatchDir,
		"--report",
	)
	if err != nil {
		t.Fatalf("build failed: %v\nstderr: %s", err, stderr)
	}

	for _, name := range []string{"ChineseSet8", "ChineseSet16", "ChineseSet32"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("summary missing %s:\n%s", name, stdout)
		}
		if _, err := os.Stat(filepath.Join(swatchDir, name+".png")); err != nil {
			t.Errorf("swatch for %s: %v", name, err)
		}
	}
	if strings.Contains(stdout, "ChineseSet64") {
		t.Errorf("summary lists a size that was not requested:\n%s", stdout)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile(json) error = %v", err)
	}
	var sets map[string][]string
	if err := json.Unmarshal(data, &sets); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(sets["ChineseSet16"]) != 16 || len(sets["ChineseSet32"]) != 32 {
		t.Errorf("palette sizes = %d, %d, want 16, 32", len(sets["ChineseSet16"]), len(sets["ChineseSet32"]))
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Open(csv) error = %v", err)
	}
	defer f.Close()
	exported, err := catalog.LoadCSV(f, catalog.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadCSV(export) error = %v", err)
	}
	if len(exported.Records) == 0 {
		t.Error("exported catalog is empty")
	}

	db, err := store.Open(context.Background(), dbPath, store.Options{})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer db.Close()
	set, err := db.LoadPalette(context.Background(), "ChineseSet16")
	if err != nil {
		t.Fatalf("LoadPalette() error = %v", err)
	}
	if len(set.Colours) != 16 {
		t.Errorf("stored ChineseSet16 has %d colours, want 16", len(set.Colours))
	}
	stored, err := db.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(stored) != len(exported.Records) {
		t.Errorf("stored catalog has %d colours, CSV has %d", len(stored), len(exported.Records))
	}
}

func TestBuildCommandErrors(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing catalog", args: []string{"build", filepath.Join(dir, "missing.csv")}},
		{name: "bad size", args: []string{"build", catalogPath, "--sizes", "24", "--csv", "", "--json", ""}},
		{name: "too few anchors", args: []string{"build", catalogPath, "--anchors", "#1772B4", "--csv", "", "--json", ""}},
		{name: "no args", args: []string{"build"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPaletteCommand(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir)

	t.Run("text", func(t *testing.T) {
		stdout, stderr, err := run(t, "palette", "--catalog", catalogPath, "--size", "16")
		if err != nil {
			t.Fatalf("palette failed: %v\nstderr: %s", err, stderr)
		}
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		if len(lines) != 16 {
			t.Fatalf("got %d lines, want 16:\n%s", len(lines), stdout)
		}
		for _, l := range lines {
			if _, err := colour.ParseHex(l); err != nil {
				t.Errorf("line %q is not a hex colour", l)
			}
		}
	})

	t.Run("json partial", func(t *testing.T) {
		stdout, stderr, err := run(t, "palette", "--size", "16", "--format", "json", "#336699")
		if err != nil {
			t.Fatalf("palette failed: %v\nstderr: %s", err, stderr)
		}
		var got struct {
			Name    string   `json:"name"`
			Colours []string `json:"colours"`
			Partial bool     `json:"partial"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("json.Unmarshal() error = %v\n%s", err, stdout)
		}
		if !got.Partial || len(got.Colours) != 9 || got.Name != "ChineseSet16" {
			t.Errorf("got %+v, want partial ChineseSet16 with 9 colours", got)
		}
		if !strings.Contains(stderr, "partial") {
			t.Errorf("expected a partial warning on stderr, got %q", stderr)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if _, _, err := run(t, "palette"); err == nil {
			t.Error("expected error without candidates")
		}
	})

	t.Run("bad format", func(t *testing.T) {
		if _, _, err := run(t, "palette", "--format", "xml", "#336699"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestInspectCommand(t *testing.T) {
	stdout, _, err := run(t, "inspect", "#FF0000", "1772b4")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{"#FF0000", "(255, 0, 0)", "red", "#1772B4", "#ED5736"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	if _, _, err := run(t, "inspect", "#XYZ"); err == nil {
		t.Error("expected error for invalid colour")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "chromaset version") {
		t.Errorf("version output = %q", stdout)
	}

	stdout, _, err = run(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version --format json failed: %v", err)
	}
	var info struct {
		Version  string `json:"version"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("version json is invalid: %v\n%s", err, stdout)
	}
	if info.Version == "" || info.Platform == "" {
		t.Errorf("version json = %+v, want version and platform", info)
	}

	if _, _, err := run(t, "version", "--format", "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir)
	jsonPath := filepath.Join(dir, "palettes.json")

	cfgPath := filepath.Join(dir, "chromaset.yaml")
	cfg := fmt.Sprintf("sizes: [16]\nset_prefix: FromFile\noutput:\n  csv: \"\"\n  json: %q\n", jsonPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs([]string{"build", catalogPath})
	t.Setenv("CHROMASET_CONFIG", cfgPath)
	t.Setenv("CHROMASET_SET_PREFIX", "FromEnv")
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build failed: %v\nstderr: %s", err, errBuf.String())
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"FromEnv16"`) {
		t.Errorf("environment prefix not applied:\n%s", data)
	}
}
