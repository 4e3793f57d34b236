package ui

import (
	"fmt"
	"html"
	"io"
	"os"

	"github.com/ferraz/discovery-go/internal/format"
	"github.com/ferraz/discovery-go/pkg/models"
	"github.com/google/uuid"
)

// Transcript is a conversation snapshot to be rendered as a standalone
// HTML document. All text passes through the formatter, so model- or
// user-supplied markup never reaches the page unescaped.
type Transcript struct {
	Title    string
	Turns    []models.ConversationTurn
	Thoughts []string
	Results  []models.ContentItem
}

// WriteTranscript renders the transcript as HTML to w.
func WriteTranscript(w io.Writer, t Transcript, opts format.Options) error {
	title := t.Title
	if title == "" {
		title = "Conversation"
	}

	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body id=\"transcript-%s\">\n", html.EscapeString(title), uuid.New().String())
	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(title))

	for _, turn := range t.Turns {
		fmt.Fprintf(w, "<div class=\"turn %s\">\n<span class=\"role\">%s</span>\n%s\n</div>\n",
			html.EscapeString(string(turn.Role)),
			html.EscapeString(string(turn.Role)),
			format.FormatWith(turn.Content, opts))
	}

	if len(t.Thoughts) > 0 {
		fmt.Fprint(w, "<details class=\"thoughts\">\n<summary>Reasoning</summary>\n")
		for _, thought := range t.Thoughts {
			fmt.Fprintf(w, "<div class=\"thought\">%s</div>\n", format.FormatWith(thought, opts))
		}
		fmt.Fprint(w, "</details>\n")
	}

	if len(t.Results) > 0 {
		fmt.Fprint(w, "<ul class=\"results\">\n")
		for _, item := range t.Results {
			fmt.Fprintf(w, "<li><a href=\"%s\">%s</a> (%s, %s)%s</li>\n",
				html.EscapeString(item.URL),
				html.EscapeString(item.Title),
				html.EscapeString(string(item.Type)),
				html.EscapeString(item.Source),
				format.FormatWith(item.Description, opts))
		}
		fmt.Fprint(w, "</ul>\n")
	}

	_, err := fmt.Fprint(w, "</body>\n</html>\n")
	return err
}

// SaveTranscript writes the transcript to a file.
func SaveTranscript(path string, t Transcript, opts format.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript file: %w", err)
	}
	defer f.Close()

	if err := WriteTranscript(f, t, opts); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
