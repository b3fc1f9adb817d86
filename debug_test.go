package graphview

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDrawLoopDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	fr := &fakeRenderer{stats: RenderStats{Nodes: 7, Edges: 3, DrawCalls: 2}}
	loop := NewDrawLoop(fr, &ManualFrames{}, nil)

	if err := loop.RenderNow(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "msg=frame") {
		t.Error("frame logged with debug mode off")
	}

	loop.SetDebugMode(true)
	if err := loop.RenderNow(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"msg=frame", "nodes=7", "edges=3", "drawCalls=2", "renders=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFailureLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	loop := NewDrawLoop(&fakeRenderer{fail: errFake}, &ManualFrames{}, nil)
	_ = loop.RenderNow()
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "render failed") {
		t.Errorf("missing warning:\n%s", buf.String())
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}
