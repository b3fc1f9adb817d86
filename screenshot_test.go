package graphview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	c, _ := newTestCanvas(t, CanvasOptions{ScreenshotDir: t.TempDir()})
	c.Screenshot("a")
	c.Screenshot("b")
	c.Screenshot("c")
	if len(c.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(c.screenshotQueue))
	}
	if c.screenshotQueue[0] != "a" || c.screenshotQueue[1] != "b" || c.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", c.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	c, _ := newTestCanvas(t, CanvasOptions{})
	if c.screenshotDir != "screenshots" {
		t.Errorf("screenshotDir = %q, want %q", c.screenshotDir, "screenshots")
	}
}

func TestScreenshotFlush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c, _ := newTestCanvas(t, CanvasOptions{ScreenshotDir: dir})
	c.Screenshot("first")
	c.Screenshot("second shot")
	c.Frame()

	if len(c.screenshotQueue) != 0 {
		t.Errorf("queue not drained: %v", c.screenshotQueue)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("files = %d, want 2", len(entries))
	}
	for _, suffix := range []string{"_first.png", "_second_shot.png"} {
		m, _ := filepath.Glob(filepath.Join(dir, "*"+suffix))
		if len(m) != 1 {
			t.Errorf("missing *%s", suffix)
		}
	}
}

func TestScreenshotHeadlessDropsQueue(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCanvas(nil, nil, CanvasOptions{ScreenshotDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	c.Screenshot("x")
	c.Frame()
	if len(c.screenshotQueue) != 0 {
		t.Error("headless queue not drained")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("headless canvas wrote %d files", len(entries))
	}
}

func TestWritePNGError(t *testing.T) {
	err := WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), nil)
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
