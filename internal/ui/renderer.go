// Package ui handles terminal output and transcript formatting.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/ferraz/discovery-go/pkg/models"
)

// Styles for different output elements.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	ThinkingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	SourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Renderer is the terminal presentation surface. It satisfies the
// dispatcher's RenderPort: chunks always arrive as the full accumulated
// text, and the renderer tracks how much of it has already been printed
// because a terminal cannot reformat what it has emitted.
type Renderer struct {
	out       io.Writer
	mdRender  *glamour.TermRenderer
	width     int
	useColors bool

	printed       int
	thinkingShown bool
}

// NewRenderer creates a renderer on stdout.
func NewRenderer() (*Renderer, error) {
	return NewRendererWithOptions(os.Stdout, 80, true)
}

// NewRendererWithOptions creates a renderer with custom options.
func NewRendererWithOptions(out io.Writer, width int, useColors bool) (*Renderer, error) {
	style := "dark"
	if !useColors {
		style = "notty"
	}

	mdRender, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithStylePath(style),
	)
	if err != nil {
		// Fallback to basic renderer
		mdRender, _ = glamour.NewTermRenderer(
			glamour.WithWordWrap(width),
		)
	}

	return &Renderer{
		out:       out,
		mdRender:  mdRender,
		width:     width,
		useColors: useColors,
	}, nil
}

// RenderThought replaces the single displayed thinking line.
func (r *Renderer) RenderThought(text string) {
	line := strings.ReplaceAll(text, "\n", " ")
	if r.width > 4 {
		// Truncate on a rune boundary so multibyte text stays valid.
		if runes := []rune(line); len(runes) > r.width-4 {
			line = string(runes[:r.width-4]) + "..."
		}
	}
	fmt.Fprint(r.out, "\r\033[K")
	if r.useColors {
		fmt.Fprint(r.out, ThinkingStyle.Render("· "+line))
	} else {
		fmt.Fprint(r.out, "· "+line)
	}
	r.thinkingShown = true
}

// ClearThinking hides the thinking line if one is shown.
func (r *Renderer) ClearThinking() {
	if r.thinkingShown {
		fmt.Fprint(r.out, "\r\033[K")
		r.thinkingShown = false
	}
}

// BeginMessage opens a new output slot for an assistant response.
func (r *Renderer) BeginMessage() {
	r.printed = 0
}

// RenderChunk prints the not-yet-printed suffix of the accumulated text.
func (r *Renderer) RenderChunk(accumulated string) {
	if r.printed > len(accumulated) {
		// accumulator was reset under us; start over
		r.printed = 0
	}
	fmt.Fprint(r.out, accumulated[r.printed:])
	r.printed = len(accumulated)
}

// RenderMarkdown renders markdown text through glamour, falling back to
// plain output when the renderer is unavailable.
func (r *Renderer) RenderMarkdown(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(r.out)
	if r.mdRender != nil {
		if rendered, err := r.mdRender.Render(text); err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
	}
	fmt.Fprintln(r.out, text)
}

// RenderResults prints the result set, replacing any notion of a previous
// one (the terminal simply prints the new set).
func (r *Renderer) RenderResults(items []models.ContentItem) {
	r.ClearThinking()
	if len(items) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	for i, item := range items {
		num := fmt.Sprintf("[%d]", i+1)
		title := item.Title
		if title == "" {
			title = item.URL
		}
		if r.useColors {
			fmt.Fprintf(r.out, "%s %s %s\n", DimStyle.Render(num), SourceStyle.Render(title), InfoStyle.Render("("+string(item.Type)+")"))
		} else {
			fmt.Fprintf(r.out, "%s %s (%s)\n", num, title, item.Type)
		}
		if item.Description != "" {
			fmt.Fprintf(r.out, "    %s\n", item.Description)
		}
		if item.Source != "" || item.URL != "" {
			meta := item.Source
			if item.URL != "" {
				if meta != "" {
					meta += " — "
				}
				meta += item.URL
			}
			if r.useColors {
				fmt.Fprintf(r.out, "    %s\n", DimStyle.Render(meta))
			} else {
				fmt.Fprintf(r.out, "    %s\n", meta)
			}
		}
	}
}

// RenderStatus shows a transient status line in place of the thinking
// indicator.
func (r *Renderer) RenderStatus(msg string) {
	fmt.Fprint(r.out, "\r\033[K")
	if r.useColors {
		fmt.Fprint(r.out, InfoStyle.Render(msg))
	} else {
		fmt.Fprint(r.out, msg)
	}
	r.thinkingShown = true
}

// RenderError shows a user-facing failure message.
func (r *Renderer) RenderError(msg string) {
	r.ClearThinking()
	if r.useColors {
		fmt.Fprintln(r.out, ErrorStyle.Render("Error: "+msg))
	} else {
		fmt.Fprintln(r.out, "Error: "+msg)
	}
}

// RenderSuccess renders a success message.
func (r *Renderer) RenderSuccess(msg string) {
	if r.useColors {
		fmt.Fprintln(r.out, SuccessStyle.Render(msg))
	} else {
		fmt.Fprintln(r.out, msg)
	}
}

// RenderInfo renders an info message.
func (r *Renderer) RenderInfo(msg string) {
	if r.useColors {
		fmt.Fprintln(r.out, InfoStyle.Render(msg))
	} else {
		fmt.Fprintln(r.out, msg)
	}
}

// RenderTitle renders a title.
func (r *Renderer) RenderTitle(title string) {
	if r.useColors {
		fmt.Fprintln(r.out, TitleStyle.Render(title))
	} else {
		fmt.Fprintln(r.out, strings.ToUpper(title))
		fmt.Fprintln(r.out, strings.Repeat("=", len(title)))
	}
}

// NewLine prints a newline.
func (r *Renderer) NewLine() {
	fmt.Fprintln(r.out)
}
