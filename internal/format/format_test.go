package format

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  "  \n\t ",
			want: "",
		},
		{
			name: "plain paragraph",
			raw:  "hello world",
			want: "<p>hello world</p>",
		},
		{
			name: "bold asterisks",
			raw:  "some **bold** text",
			want: "<p>some <strong>bold</strong> text</p>",
		},
		{
			name: "bold underscores",
			raw:  "some __bold__ text",
			want: "<p>some <strong>bold</strong> text</p>",
		},
		{
			name: "non-greedy bold",
			raw:  "**a** and **b**",
			want: "<p><strong>a</strong> and <strong>b</strong></p>",
		},
		{
			name: "html is escaped",
			raw:  "<script>alert('x')</script>",
			want: "<p>&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;</p>",
		},
		{
			name: "escaping precedes bold",
			raw:  "**<b>**",
			want: "<p><strong>&lt;b&gt;</strong></p>",
		},
		{
			name: "single newline becomes br",
			raw:  "line one\nline two",
			want: "<p>line one<br>line two</p>",
		},
		{
			name: "double newline splits paragraphs",
			raw:  "first\n\nsecond",
			want: "<p>first</p><p>second</p>",
		},
		{
			name: "many newlines split once",
			raw:  "first\n\n\n\nsecond",
			want: "<p>first</p><p>second</p>",
		},
		{
			name: "unordered list",
			raw:  "- one\n- two",
			want: "<ul><li>one</li><li>two</li></ul>",
		},
		{
			name: "list followed by plain line",
			raw:  "- one\n- two\nthree",
			want: "<ul><li>one</li><li>two</li></ul><p>three</p>",
		},
		{
			name: "ordered list",
			raw:  "1. first\n2. second",
			want: "<ol><li>first</li><li>second</li></ol>",
		},
		{
			name: "star bullets",
			raw:  "* a\n* b",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "headers map to h2 through h4",
			raw:  "# Title\n## Section\n### Sub",
			want: "<h2>Title</h2><h3>Section</h3><h4>Sub</h4>",
		},
		{
			name: "header between paragraphs",
			raw:  "intro\n\n## Details\n\nbody",
			want: "<p>intro</p><h3>Details</h3><p>body</p>",
		},
		{
			name: "italics off by default",
			raw:  "some *starred* text",
			want: "<p>some *starred* text</p>",
		},
		{
			name: "mixed list and text in one paragraph",
			raw:  "intro line\n- one\n- two",
			want: "<p>intro line</p><ul><li>one</li><li>two</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.raw)
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatWithItalics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "star italics",
			raw:  "some *starred* text",
			want: "<p>some <em>starred</em> text</p>",
		},
		{
			name: "underscore italics",
			raw:  "some _word_ here",
			want: "<p>some <em>word</em> here</p>",
		},
		{
			name: "bold wins over italics",
			raw:  "**bold** and *ital*",
			want: "<p><strong>bold</strong> and <em>ital</em></p>",
		},
		{
			name: "italics never span lines",
			raw:  "a *b\nc* d",
			want: "<p>a *b<br>c* d</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatWith(tt.raw, Options{Italics: true})
			if got != tt.want {
				t.Errorf("FormatWith(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
