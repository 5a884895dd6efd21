package markdown

import "testing"

func TestExtractFrontmatter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Frontmatter
		body  string
	}{
		{
			name:  "no frontmatter",
			input: "# Hello\n\nWorld",
			want:  nil,
			body:  "# Hello\n\nWorld",
		},
		{
			name:  "basic frontmatter",
			input: "---\ntitle: \"My Note\"\ntags: [go, test]\n---\n\n# Content",
			want: &Frontmatter{
				Title:   "My Note",
				Tags:    []string{"go", "test"},
				EndLine: 4,
			},
			body: "\n# Content",
		},
		{
			name:  "closing delimiter at end of file",
			input: "---\ntitle: End\n---",
			want:  &Frontmatter{Title: "End", EndLine: 3},
			body:  "",
		},
		{
			name:  "unclosed frontmatter",
			input: "---\ntitle: Unclosed\n",
			want:  nil,
			body:  "---\ntitle: Unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFrontmatter([]byte(tt.input))
			if body := string(got.Body([]byte(tt.input))); body != tt.body {
				t.Errorf("body: got %q, want %q", body, tt.body)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected non-nil frontmatter")
			}
			if got.Title != tt.want.Title {
				t.Errorf("title: got %q, want %q", got.Title, tt.want.Title)
			}
			if got.EndLine != tt.want.EndLine {
				t.Errorf("end line: got %d, want %d", got.EndLine, tt.want.EndLine)
			}
			if len(got.Tags) != len(tt.want.Tags) {
				t.Errorf("tags: got %v, want %v", got.Tags, tt.want.Tags)
			}
		})
	}
}
