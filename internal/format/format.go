// Package format converts raw assistant text into safe HTML markup.
//
// The input is untrusted model output with markdown-like conventions. All
// HTML metacharacters are escaped before any markup is introduced, so
// injected tags can never survive into the result. Callers always format
// from the raw accumulated text, never from previously formatted output.
package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Options controls optional formatting behavior.
type Options struct {
	// Italics enables single-delimiter *text* / _text_ emphasis. Off by
	// default: stray asterisks (bullet markers, footnotes) misfire too
	// easily for streamed text.
	Italics bool
}

var (
	boldStars  = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnders = regexp.MustCompile(`__(.+?)__`)
	italStar   = regexp.MustCompile(`\*([^*\n]+?)\*`)
	italUnder  = regexp.MustCompile(`_([^_\n]+?)_`)
	paraBreak  = regexp.MustCompile(`\n{2,}`)
	bulletLine = regexp.MustCompile(`^\s*([*+-]|\d+\.)\s+(.*)$`)
	headerLine = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
)

// Format renders raw text with default options.
func Format(raw string) string {
	return FormatWith(raw, Options{})
}

// FormatWith renders raw text to safe HTML. Processing order: escape,
// bold, optional italics, paragraph splitting, list and header detection,
// paragraph wrapping of remaining line runs.
func FormatWith(raw string, opts Options) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	s := html.EscapeString(raw)
	s = boldStars.ReplaceAllString(s, "<strong>$1</strong>")
	s = boldUnders.ReplaceAllString(s, "<strong>$1</strong>")
	if opts.Italics {
		s = italStar.ReplaceAllString(s, "<em>$1</em>")
		s = italUnder.ReplaceAllString(s, "<em>$1</em>")
	}

	var b strings.Builder
	for _, para := range paraBreak.Split(s, -1) {
		renderParagraph(&b, para)
	}
	return b.String()
}

// renderParagraph emits one paragraph's blocks: consecutive bullet lines
// merge into a single list, header lines become headings, and runs of
// plain lines are wrapped in <p> with <br> between lines.
func renderParagraph(b *strings.Builder, para string) {
	var plain []string
	var items []string
	ordered := false

	flushPlain := func() {
		if len(plain) > 0 {
			b.WriteString("<p>" + strings.Join(plain, "<br>") + "</p>")
			plain = nil
		}
	}
	flushList := func() {
		if len(items) == 0 {
			return
		}
		tag := "ul"
		if ordered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">")
		for _, it := range items {
			b.WriteString("<li>" + it + "</li>")
		}
		b.WriteString("</" + tag + ">")
		items = nil
	}

	for _, line := range strings.Split(para, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := headerLine.FindStringSubmatch(line); m != nil {
			flushPlain()
			flushList()
			level := len(m[1]) + 1 // #..### map to h2..h4
			fmt.Fprintf(b, "<h%d>%s</h%d>", level, m[2], level)
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			flushPlain()
			if len(items) == 0 {
				ordered = m[1] != "*" && m[1] != "-" && m[1] != "+"
			}
			items = append(items, m[2])
			continue
		}
		flushList()
		plain = append(plain, line)
	}
	flushPlain()
	flushList()
}
