package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/rasterpaint/internal/surface"
)

func TestParse(t *testing.T) {
	input := `
undo_depth = 8
save_dir = /tmp/pictures

[mask]
color = #FF000040

[filters]
blur_sigma = 2.5
unsharpen_threshold = 4
brighten = 25
gray_g = 1.5

[notify]
capture = true
save = false
copy = true

[viewer]
CheckerDark: #101010

[palette]
Brand = #336699
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.UndoDepth != 8 {
		t.Errorf("Expected undo_depth 8, got %d", cfg.UndoDepth)
	}
	if cfg.SaveDir != "/tmp/pictures" {
		t.Errorf("Expected save_dir '/tmp/pictures', got '%s'", cfg.SaveDir)
	}
	if cfg.MaskColor != surface.RGBA(255, 0, 0, 0x40) {
		t.Errorf("Unexpected mask color %s", FormatColor(cfg.MaskColor))
	}
	if cfg.Filters.BlurSigma != 2.5 || cfg.Filters.UnsharpenThreshold != 4 || cfg.Filters.Brighten != 25 {
		t.Errorf("Unexpected filters %+v", cfg.Filters)
	}
	if cfg.Filters.UnsharpenSigma != 5.1 || cfg.Filters.GrayR != 1.2 || cfg.Filters.GrayG != 1.5 {
		t.Errorf("Unset filters lost their defaults: %+v", cfg.Filters)
	}
	if !cfg.Notify.Capture || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify %+v", cfg.Notify)
	}
	if cfg.Viewer.CheckerDark != surface.RGBA(0x10, 0x10, 0x10, 255) {
		t.Errorf("Unexpected checker color %s", FormatColor(cfg.Viewer.CheckerDark))
	}
	col, err := cfg.Color("brand")
	if err != nil || col != surface.RGBA(0x33, 0x66, 0x99, 255) {
		t.Errorf("palette lookup = %s, %v", FormatColor(col), err)
	}

	p := cfg.Filters.Params()
	if p.BlurSigma != 2.5 || p.Tint.G != 1.5 {
		t.Errorf("Params did not carry the filter settings: %+v", p)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"depth":     "undo_depth = zero",
		"depthlow":  "undo_depth = 0",
		"notify":    "[notify]\nsave = maybe",
		"mask":      "[mask]\ncolor = #12",
		"filter":    "[filters]\nblur_sigma = -1",
		"viewer":    "[viewer]\nBackground: nope",
		"palettehx": "[palette]\nx = #GGGGGG",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `undo_depth = 12
save_dir = /home/user/pictures

[mask]
color = #00FF0080

[filters]
blur_sigma = 3
gray_b = 2

[notify]
capture = true
save = true
copy = false

[viewer]
Background = #000000
Foreground = #FFFFFF

[palette]
sky = #87CEEB
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.UndoDepth != cfg2.UndoDepth || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("Root mismatch: %d %q vs %d %q", cfg.UndoDepth, cfg.SaveDir, cfg2.UndoDepth, cfg2.SaveDir)
	}
	if cfg.MaskColor != cfg2.MaskColor {
		t.Errorf("Mask mismatch")
	}
	if cfg.Filters != cfg2.Filters {
		t.Errorf("Filters mismatch: %+v vs %+v", cfg.Filters, cfg2.Filters)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Viewer != cfg2.Viewer {
		t.Errorf("Viewer mismatch: %+v vs %+v", cfg.Viewer, cfg2.Viewer)
	}
	if cfg.Palette["sky"] != cfg2.Palette["sky"] {
		t.Errorf("Palette mismatch")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want surface.Color
	}{
		{"#102030", surface.RGBA(0x10, 0x20, 0x30, 255)},
		{"#10203040", surface.RGBA(0x10, 0x20, 0x30, 0x40)},
		{"red", surface.RGBA(255, 0, 0, 255)},
		{" Black ", surface.Black},
		{"transparent", surface.Transparent},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseColor(%q) = %s, %v", tc.in, FormatColor(got), err)
		}
	}
	if _, err := ParseColor("not-a-color"); !errors.Is(err, ErrBadColor) {
		t.Errorf("expected ErrBadColor, got %v", err)
	}
}

func TestCanvasOptions(t *testing.T) {
	cfg := New()
	cfg.UndoDepth = 2
	if len(cfg.CanvasOptions()) != 3 {
		t.Fatalf("unexpected option count")
	}
}

func TestLoaderPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("undo_depth = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("v1", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UndoDepth != 3 {
		t.Fatalf("override file not used")
	}
}

func TestLoaderDefaultsAndSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	l := NewLoader("v1", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UndoDepth != New().UndoDepth {
		t.Fatalf("expected defaults without a config file")
	}
	cfg.SaveDir = "/srv/out"
	path, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, ".config", "rasterpaint", "config.rc") {
		t.Fatalf("saved to %s", path)
	}
	again, err := l.Load()
	if err != nil || again.SaveDir != "/srv/out" {
		t.Fatalf("reload = %+v, %v", again, err)
	}
}
