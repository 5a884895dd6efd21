package markdown

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"My Note! (Draft)", "my-note-draft"},
		{"2024-01-01 Daily", "2024-01-01-daily"},
		{"", ""},
		{"Already-Slugged", "already-slugged"},
		{"  spaced __ out  ", "spaced-out"},
		{"Café Notes", "café-notes"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
