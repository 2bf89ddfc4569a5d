package main

import (
	"bytes"
	"errors"
	"image"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/rasterpaint/internal/capture"
	"github.com/example/rasterpaint/internal/codec"
	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
)

var (
	red  = surface.RGBA(255, 0, 0, 255)
	blue = surface.RGBA(0, 0, 255, 255)
)

// quiet captures stdout and discards stderr for the rest of the test.
func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	origOut, origErr := stdout, stderr
	stdout, stderr = &out, io.Discard
	t.Cleanup(func() { stdout, stderr = origOut, origErr })
	return &out
}

func whitePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	if err := codec.EncodeFile(path, surface.NewFilled(w, h, surface.White)); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func decode(t *testing.T, path string) *surface.Surface {
	t.Helper()
	img, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return img
}

func TestCaptureRunError(t *testing.T) {
	original := captureFn
	sentinel := errors.New("boom")
	captureFn = func(capture.Options) (*surface.Surface, error) { return nil, sentinel }
	t.Cleanup(func() { captureFn = original })

	cmd := &captureCmd{out: sink{output: filepath.Join(t.TempDir(), "x.png")}}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestCaptureWritesOutput(t *testing.T) {
	quiet(t)
	original := captureFn
	var got capture.Options
	captureFn = func(opts capture.Options) (*surface.Surface, error) {
		got = opts
		return surface.NewFilled(3, 2, blue), nil
	}
	t.Cleanup(func() { captureFn = original })

	out := filepath.Join(t.TempDir(), "shot.png")
	cmd, err := parseCaptureCmd([]string{"-monitor", "primary", "-region", "1,1,4,3", "-output", out}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Monitor != "primary" || got.Region != image.Rect(1, 1, 4, 3) {
		t.Fatalf("options not passed through: %+v", got)
	}
	if img := decode(t, out); img.Width() != 3 || img.Pixel(2, 1) != blue {
		t.Fatalf("capture not written")
	}
}

func TestParseCaptureNeedsDestination(t *testing.T) {
	if _, err := parseCaptureCmd(nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCaptureListMonitors(t *testing.T) {
	out := quiet(t)
	original := monitorsFn
	monitorsFn = func() ([]capture.MonitorInfo, error) {
		return []capture.MonitorInfo{{Index: 0, Name: "DP-1", Rect: image.Rect(0, 0, 1920, 1080), Primary: true}}, nil
	}
	t.Cleanup(func() { monitorsFn = original })

	cmd, err := parseCaptureCmd([]string{"-list"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "0\tDP-1\t0,0,1920,1080 (primary)\n"; out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown shape", []string{"-file", "a.png", "star", "1", "2"}, "unsupported shape"},
		{"arity", []string{"-file", "a.png", "circle", "1", "2"}, "requires 3 integer arguments"},
		{"not a number", []string{"-file", "a.png", "fill", "1", "y"}, "invalid integer"},
		{"bad color", []string{"-file", "a.png", "-color", "nope", "fill", "1", "1"}, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDrawCmd(tt.args, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDrawRectDefaultsOutputToInput(t *testing.T) {
	quiet(t)
	in := whitePNG(t, 4, 4)
	cmd, err := parseDrawCmd([]string{"-file", in, "-color", "#ff0000", "rect", "0", "0", "2", "2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decode(t, in)
	if img.Pixel(1, 1) != red || img.Pixel(2, 2) != surface.White {
		t.Fatalf("rect not drawn in place")
	}
}

func TestDrawPolygonAngle(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "a.png", "polygon", "5", "5", "4", "6", "30"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.angle != 30 || len(cmd.coords) != 4 || cmd.coords[3] != 6 {
		t.Fatalf("polygon arguments: %v angle %v", cmd.coords, cmd.angle)
	}
}

func TestFilterRegion(t *testing.T) {
	quiet(t)
	in := whitePNG(t, 4, 4)
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseFilterCmd([]string{"-file", in, "-output", out, "-region", "0,0,2,2", "invert"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decode(t, out)
	if img.Pixel(1, 1) != surface.Black || img.Pixel(3, 3) != surface.White {
		t.Fatalf("region not inverted")
	}
}

func TestFilterResize(t *testing.T) {
	quiet(t)
	in := whitePNG(t, 4, 4)
	cmd, err := parseFilterCmd([]string{"-file", in, "resize", "8", "2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if img := decode(t, in); img.Width() != 8 || img.Height() != 2 {
		t.Fatalf("size %dx%d", img.Width(), img.Height())
	}
}

func TestParseFilterErrors(t *testing.T) {
	if _, err := parseFilterCmd([]string{"-file", "a.png", "sparkle"}, nil); err == nil {
		t.Fatalf("unknown filter accepted")
	}
	if _, err := parseFilterCmd([]string{"-file", "a.png", "-region", "0,0,1,1", "resize", "2", "2"}, nil); err == nil {
		t.Fatalf("resize with a region accepted")
	}
	if _, err := parseFilterCmd([]string{"-file", "a.png", "blur", "3"}, nil); err == nil {
		t.Fatalf("extra arguments accepted")
	}
}

func TestFilterOverrides(t *testing.T) {
	cmd, err := parseFilterCmd([]string{"-file", "a.png", "-sigma", "2", "-threshold", "0", "unsharpen"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	op := cmd.op(transform.DefaultParams())
	if op.Sigma != 2 || op.Threshold != 0 {
		t.Fatalf("overrides ignored: %+v", op)
	}
}

func TestNewCmd(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "blank.png")
	cmd, err := parseNewCmd([]string{"-color", "blue", "-output", out, "3", "2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decode(t, out)
	if img.Width() != 3 || img.Height() != 2 || img.Pixel(2, 1) != blue {
		t.Fatalf("blank image wrong")
	}
}

func TestParseNewCmdRequiresSize(t *testing.T) {
	var uerr *UsageError
	if _, err := parseNewCmd([]string{"-output", "x.png", "0", "2"}, nil); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestEditScriptUndo(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "edit.png")
	cmd, err := parseEditCmd([]string{
		"-new", "4x4", "-output", out,
		"-e", "color red", "-e", "rect 0 0 1 1",
		"-e", "color blue", "-e", "rect 1 1 2 2",
		"-e", "undo",
	}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decode(t, out)
	if img.Pixel(0, 0) != red {
		t.Fatalf("first rect lost")
	}
	if img.Pixel(1, 1) != surface.White {
		t.Fatalf("undo did not remove the second rect")
	}
}

func TestEditUndoReachesStartingPicture(t *testing.T) {
	quiet(t)
	in := whitePNG(t, 2, 2)
	cmd, err := parseEditCmd([]string{
		"-file", in,
		"-e", "color red", "-e", "rect 0 0 2 2",
		"-e", "color blue", "-e", "rect 0 0 1 1",
		"-e", "undo", "-e", "undo",
	}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := decode(t, in).Pixel(0, 0); got != surface.White {
		t.Fatalf("got %#x, want the loaded picture", uint32(got))
	}
}

func TestEditCommandsAreOneUndoStep(t *testing.T) {
	for _, line := range []string{"fill 0 3", "flood 0 3", "brush 1 2 1", "disc 1 2 1", "clear", "cut", "filter invert"} {
		t.Run(line, func(t *testing.T) {
			quiet(t)
			cmd, err := parseEditCmd([]string{"-new", "4x4"}, nil)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := cmd.open(); err != nil {
				t.Fatalf("open: %v", err)
			}
			for _, l := range []string{"color red", "line 0 0 3 0"} {
				if err := cmd.executeLine(l); err != nil {
					t.Fatalf("%s: %v", l, err)
				}
			}
			withLine := cmd.canvas.Surface().Clone()
			depth := cmd.canvas.UndoLen()
			if err := cmd.executeLine(line); err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := cmd.canvas.UndoLen() - depth; got != 1 {
				t.Fatalf("added %d checkpoints, want 1", got)
			}
			if cmd.canvas.Surface().Equal(withLine) {
				t.Fatalf("command changed nothing")
			}
			if err := cmd.executeLine("undo"); err != nil {
				t.Fatalf("undo: %v", err)
			}
			if !cmd.canvas.Surface().Equal(withLine) {
				t.Fatalf("first undo did not return to the line")
			}
			if err := cmd.executeLine("undo"); err != nil {
				t.Fatalf("undo: %v", err)
			}
			if got := cmd.canvas.Pixel(0, 0); got != surface.White {
				t.Fatalf("second undo left %#x, want the blank picture", uint32(got))
			}
		})
	}
}

func TestEditStdinScript(t *testing.T) {
	out := quiet(t)
	cmd, err := parseEditCmd([]string{"-new", "5x3"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.input = strings.NewReader("# comment\n\nselect 1 1 3 2\ncopy\ninfo\nexit\nbogus\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"size 5x3", "selection 1,1,3,2", "buffer 2x1", "undo 2/"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("info missing %q:\n%s", want, out.String())
		}
	}
}

func TestEditReportsFailingLine(t *testing.T) {
	cmd, err := parseEditCmd([]string{"-new", "2x2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.input = strings.NewReader("color red\npolygon 1 1 1 2\n")
	err = cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "line 2: polygon"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q in %v", want, err)
	}
}

func TestEditFilterUsesSelection(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "f.png")
	cmd, err := parseEditCmd([]string{"-new", "4x4", "-output", out, "-e", "select 2 2 4 4", "-e", "filter invert"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decode(t, out)
	if img.Pixel(3, 3) != surface.Black || img.Pixel(0, 0) != surface.White {
		t.Fatalf("filter ignored the selection")
	}
}

func TestParseEditInputs(t *testing.T) {
	var uerr *UsageError
	if _, err := parseEditCmd(nil, nil); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseEditCmd([]string{"-new", "2x2", "-file", "a.png"}, nil); err == nil {
		t.Fatalf("-new with -file accepted")
	}
	if _, _, err := parseSize("12by3"); err == nil {
		t.Fatalf("bad size accepted")
	}
}

func TestRootUnknownCommandShowsUsage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	r.configPath = filepath.Join(t.TempDir(), "missing.rc")
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Usage: rasterpaint") {
		t.Fatalf("usage text missing: %q", err.Error())
	}
}

func TestSubcommandUsageNamesProgram(t *testing.T) {
	_, err := parseFilterCmd(nil, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := err.Error(); !strings.Contains(help, "rasterpaint filter") || !strings.Contains(help, "-region") {
		t.Fatalf("help text incomplete:\n%s", help)
	}
}

func TestConfigPrint(t *testing.T) {
	out := quiet(t)
	cmd, err := parseConfigCmd([]string{"print"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "[filters]") {
		t.Fatalf("config not printed:\n%s", out.String())
	}
}

func TestVersion(t *testing.T) {
	out := quiet(t)
	cmd := &versionCmd{r: &root{program: "rasterpaint"}}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "rasterpaint version ") {
		t.Fatalf("got %q", out.String())
	}
}
