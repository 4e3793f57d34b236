package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ferraz/discovery-go/pkg/models"
)

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRendererWithOptions(&buf, 80, false)
	if err != nil {
		t.Fatalf("NewRendererWithOptions() error = %v", err)
	}
	return r, &buf
}

func TestRenderChunkPrintsOnlyNewSuffix(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.BeginMessage()
	r.RenderChunk("Hel")
	r.RenderChunk("Hello, wor")
	r.RenderChunk("Hello, world")

	if got := buf.String(); got != "Hello, world" {
		t.Errorf("output = %q, want %q", got, "Hello, world")
	}
}

func TestRenderChunkRecoversFromReset(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.BeginMessage()
	r.RenderChunk("first response")
	buf.Reset()

	r.BeginMessage()
	r.RenderChunk("second")

	if got := buf.String(); got != "second" {
		t.Errorf("output = %q, want %q", got, "second")
	}
}

func TestRenderThoughtOverwritesLine(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.RenderThought("first thought")
	r.RenderThought("second thought")

	out := buf.String()
	if strings.Count(out, "\r\033[K") != 2 {
		t.Errorf("output %q does not rewrite the line per thought", out)
	}
	if !strings.Contains(out, "second thought") {
		t.Errorf("output %q missing latest thought", out)
	}
}

func TestRenderThoughtTruncatesLongLines(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.RenderThought(strings.Repeat("x", 200))

	if !strings.Contains(buf.String(), "...") {
		t.Error("long thought not truncated")
	}
}

func TestRenderThoughtTruncatesOnRuneBoundary(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.RenderThought(strings.Repeat("日", 200))

	out := buf.String()
	if !utf8.ValidString(out) {
		t.Errorf("output is not valid UTF-8: %q", out)
	}
	if !strings.Contains(out, "...") {
		t.Error("long thought not truncated")
	}
}

func TestClearThinkingOnlyAfterThought(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.ClearThinking()
	if buf.Len() != 0 {
		t.Errorf("ClearThinking with nothing shown wrote %q", buf.String())
	}

	r.RenderThought("t")
	buf.Reset()
	r.ClearThinking()
	if buf.String() != "\r\033[K" {
		t.Errorf("ClearThinking wrote %q, want erase sequence", buf.String())
	}
}

func TestRenderResults(t *testing.T) {
	r, buf := newTestRenderer(t)

	r.RenderResults([]models.ContentItem{
		{Type: models.ContentArticle, Title: "Go Pipelines", Source: "blog.golang.org", URL: "https://go.dev/blog/pipelines", Description: "Patterns for streaming data"},
		{Type: models.ContentVideo, URL: "https://example.com/v"},
	})

	out := buf.String()
	if !strings.Contains(out, "[1] Go Pipelines (article)") {
		t.Errorf("output %q missing numbered first item", out)
	}
	if !strings.Contains(out, "Patterns for streaming data") {
		t.Errorf("output %q missing description", out)
	}
	// Untitled items fall back to their URL.
	if !strings.Contains(out, "[2] https://example.com/v (video)") {
		t.Errorf("output %q missing URL fallback title", out)
	}
}

func TestRenderResultsEmpty(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.RenderResults(nil)
	if buf.Len() != 0 {
		t.Errorf("empty result set wrote %q", buf.String())
	}
}

func TestRenderError(t *testing.T) {
	r, buf := newTestRenderer(t)
	r.RenderError("something broke")
	if got := buf.String(); got != "Error: something broke\n" {
		t.Errorf("output = %q", got)
	}
}
