package graphview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"
)

// Screenshot queues a labeled screenshot of the next frame. The PNG is
// written to the canvas screenshot directory with a timestamped filename.
// Headless canvases and renderers that cannot read back ignore the queue.
func (c *Canvas) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots reads back the last rendered frame once and writes it
// for every queued label. Called at the end of Frame.
func (c *Canvas) flushScreenshots() {
	if len(c.screenshotQueue) == 0 {
		return
	}
	defer func() { c.screenshotQueue = c.screenshotQueue[:0] }()

	snap, ok := c.renderer.(Snapshotter)
	if !ok {
		Logger().Warn("screenshot: renderer cannot read back frames")
		return
	}
	img, err := snap.Snapshot()
	if err != nil {
		Logger().Warn("screenshot: read back", "error", err)
		return
	}
	if err := os.MkdirAll(c.screenshotDir, 0o755); err != nil {
		Logger().Warn("screenshot: mkdir", "dir", c.screenshotDir, "error", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range c.screenshotQueue {
		path := fmt.Sprintf("%s/%s_%s.png", c.screenshotDir, stamp, sanitizeLabel(label))
		if err := WritePNG(path, img); err != nil {
			Logger().Warn("screenshot", "error", err)
			continue
		}
		Logger().Info("screenshot written", "path", path)
	}
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
