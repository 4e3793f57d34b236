package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ferraz/discovery-go/internal/format"
	"github.com/ferraz/discovery-go/pkg/models"
)

func TestWriteTranscript(t *testing.T) {
	tr := Transcript{
		Title: "Quantum Leaps",
		Turns: []models.ConversationTurn{
			{Role: models.RoleUser, Content: "what is **entanglement**?"},
			{Role: models.RoleAssistant, Content: "A correlation between particles.\n\nIt has no classical analogue."},
		},
		Thoughts: []string{"Reading the article..."},
		Results: []models.ContentItem{
			{Type: models.ContentArticle, Title: "Primer", URL: "https://example.com/primer", Source: "example.com"},
		},
	}

	var buf bytes.Buffer
	if err := WriteTranscript(&buf, tr, format.Options{}); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Quantum Leaps</title>") {
		t.Error("missing document title")
	}
	if !strings.Contains(out, "<strong>entanglement</strong>") {
		t.Error("turn content not formatted")
	}
	if !strings.Contains(out, "<p>A correlation between particles.</p><p>It has no classical analogue.</p>") {
		t.Error("assistant paragraphs not split")
	}
	if !strings.Contains(out, "<summary>Reasoning</summary>") {
		t.Error("thoughts section missing")
	}
	if !strings.Contains(out, `<a href="https://example.com/primer">Primer</a>`) {
		t.Error("results list missing")
	}
}

func TestWriteTranscriptEscapesMarkup(t *testing.T) {
	tr := Transcript{
		Title: "<script>alert(1)</script>",
		Turns: []models.ConversationTurn{
			{Role: models.RoleUser, Content: "<img src=x onerror=alert(1)>"},
		},
		Results: []models.ContentItem{
			{Title: "<b>bold</b>", URL: `"><script>`},
		},
	}

	var buf bytes.Buffer
	if err := WriteTranscript(&buf, tr, format.Options{}); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>") || strings.Contains(out, "<img") || strings.Contains(out, "<b>bold</b>") {
		t.Errorf("unescaped markup leaked into transcript:\n%s", out)
	}
}

func TestSaveTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.html")

	tr := Transcript{Title: "Saved"}
	if err := SaveTranscript(path, tr, format.Options{}); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	if !strings.Contains(string(data), "<h1>Saved</h1>") {
		t.Error("saved transcript missing heading")
	}
}
