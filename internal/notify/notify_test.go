package notify

import (
	"os"
	"strings"
	"testing"

	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/platform"
	"github.com/example/rasterpaint/internal/surface"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		out = append(out, sent{title, body, opts})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Save("a.png")
	n.Copy("")
	n.Capture("screen", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications with everything disabled", len(*got))
	}
	var nilNotifier *Notifier
	nilNotifier.Save("a.png")
	nilNotifier.Enable(EventSave, true)
}

func TestFromConfig(t *testing.T) {
	n := FromConfig(config.Notify{Save: true, Copy: true})
	got := capture(n)
	n.Copy("")
	n.Save("out.png")
	n.Capture("root window", nil)
	if len(*got) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(*got))
	}
	if (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("copy body = %q", (*got)[0].body)
	}
	if !strings.HasPrefix((*got)[1].body, "Saved ") || !strings.HasSuffix((*got)[1].body, "out.png") {
		t.Fatalf("save body = %q", (*got)[1].body)
	}
	if (*got)[1].opts.AppName != "rasterpaint" {
		t.Fatalf("app name = %q", (*got)[1].opts.AppName)
	}
}

func TestCapturePreviewIsCleanedUp(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	var icon string
	n.send = func(_, _ string, opts platform.Options) error {
		icon = opts.IconPath
		if _, err := os.Stat(icon); err != nil {
			t.Errorf("preview missing while notifying: %v", err)
		}
		return nil
	}
	n.Capture("region", surface.NewFilled(4, 4, surface.White))
	if icon == "" {
		t.Fatalf("no preview attached")
	}
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Fatalf("preview not removed: %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RASTERPAINT_NOTIFY_TITLE", "Paint")
	t.Setenv("RASTERPAINT_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Paint" || prefs.Templates[EventSave] != "Wrote %s" {
		t.Fatalf("overrides ignored: %+v", prefs)
	}
	if prefs.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Fatalf("unset override changed a template")
	}
}
