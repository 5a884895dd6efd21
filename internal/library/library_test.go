package library

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLibrary(t *testing.T) *Library {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"index.md", "notes/alpha.md", "notes/deep/Beta.md", ".hidden/x.md", "notes/image.png"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("# "+f+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return New(root)
}

func TestListDocuments(t *testing.T) {
	l := setupLibrary(t)
	docs, err := l.ListDocuments()
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, d := range docs {
		paths = append(paths, d.Path)
	}
	want := "index.md notes/alpha.md notes/deep/Beta.md"
	if got := strings.Join(paths, " "); got != want {
		t.Errorf("documents = %q, want %q", got, want)
	}
	if docs[2].Depth != 2 {
		t.Errorf("depth = %d, want 2", docs[2].Depth)
	}
}

func TestResolve(t *testing.T) {
	l := setupLibrary(t)
	tests := []struct {
		from, target, want string
	}{
		{"notes/alpha.md", "deep/Beta.md", "notes/deep/Beta.md"},
		{"notes/alpha.md", "../index.md#top", "index.md#top"},
		{"notes/alpha.md", "/index.md", "index.md"},
		{"notes/alpha.md#x", "#intro", "notes/alpha.md#intro"},
		{"notes/alpha.md", "wiki:beta", "notes/deep/Beta.md"},
		{"index.md", "wiki:notes/alpha#Part", "notes/alpha.md#Part"},
		{"index.md", "wiki:missing", "missing.md"},
		{StartPage, "notes/alpha.md", "notes/alpha.md"},
		{"index.md", StartPage, StartPage},
		{"index.md", "", "index.md"},
	}
	for _, tt := range tests {
		got, err := l.Resolve(tt.from, tt.target)
		if err != nil {
			t.Errorf("Resolve(%q, %q): %v", tt.from, tt.target, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.from, tt.target, got, tt.want)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	l := setupLibrary(t)
	if _, err := l.Resolve("index.md", "https://example.com"); !errors.Is(err, ErrExternal) {
		t.Errorf("web link: err = %v, want ErrExternal", err)
	}
	if _, err := l.Resolve("index.md", "mailto:me@example.com"); !errors.Is(err, ErrExternal) {
		t.Errorf("mail link: err = %v, want ErrExternal", err)
	}
	if _, err := l.Resolve("notes/alpha.md", "../../etc/passwd"); !errors.Is(err, ErrOutside) {
		t.Errorf("escape: err = %v, want ErrOutside", err)
	}
}

func TestReadAndLocation(t *testing.T) {
	l := setupLibrary(t)
	data, err := l.Read("notes/alpha.md#part")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "alpha") {
		t.Errorf("content = %q", data)
	}
	if _, err := l.Read("../outside.md"); !errors.Is(err, ErrOutside) {
		t.Errorf("err = %v, want ErrOutside", err)
	}

	abs := l.Path("notes/alpha.md#part")
	loc, ok := l.Location(abs)
	if !ok || loc != "notes/alpha.md" {
		t.Errorf("Location(%q) = %q, %v", abs, loc, ok)
	}
	if l.Path(StartPage) != "" {
		t.Error("start page has no file")
	}
}

func TestStartContent(t *testing.T) {
	l := setupLibrary(t)
	data, err := l.StartContent([]string{"notes/alpha.md#x", "gone.md"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "## Recent\n\n- [alpha](</notes/alpha.md>)\n") {
		t.Errorf("missing recent section:\n%s", s)
	}
	if strings.Contains(s, "gone") {
		t.Error("unknown recent location listed")
	}
	if !strings.Contains(s, "**notes/deep/**") {
		t.Errorf("missing directory heading:\n%s", s)
	}
}
