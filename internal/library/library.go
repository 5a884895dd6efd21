// Package library maps locations onto the markdown files under a root
// directory.
//
// A location is a slash separated path relative to the root, optionally
// followed by "#fragment", or the generated start page.
package library

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pfassina/vimnav/internal/markdown"
)

// StartPage is the location of the generated index page.
const StartPage = "about:start"

var (
	ErrExternal = errors.New("external location")
	ErrOutside  = errors.New("location outside library")
)

// Entry is a document in the library.
type Entry struct {
	Name  string
	Path  string // slash separated, relative to the root
	Depth int
}

// Library is a directory of markdown documents.
type Library struct {
	Root string
}

func New(root string) *Library {
	return &Library{Root: root}
}

// ListDocuments returns every markdown file under the root, sorted by path.
// Hidden files and directories are skipped.
func (l *Library) ListDocuments() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		rel, _ := filepath.Rel(l.Root, p)
		if rel == "." {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(name, ".md") {
			return nil
		}
		rel = filepath.ToSlash(rel)
		entries = append(entries, Entry{
			Name:  name,
			Path:  rel,
			Depth: strings.Count(rel, "/"),
		})
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, err
}

// SplitFragment splits "a/b.md#frag" into its path and fragment.
func SplitFragment(loc string) (string, string) {
	p, frag, _ := strings.Cut(loc, "#")
	return p, frag
}

// IsExternal reports whether target points outside the library, like a web
// or mail link.
func IsExternal(target string) bool {
	scheme, _, ok := strings.Cut(target, ":")
	if !ok || strings.ContainsAny(scheme, "/#") {
		return false
	}
	switch strings.ToLower(scheme) {
	case "wiki", "about":
		return false
	}
	return true
}

// Resolve turns a link target found in the document at from into a
// location. Relative targets resolve against from's directory, "/x.md"
// against the root, "#frag" against from itself and "wiki:name" against
// the document whose file name matches.
func (l *Library) Resolve(from, target string) (string, error) {
	target = strings.TrimSpace(target)
	fromPath, _ := SplitFragment(from)

	switch {
	case target == "":
		return from, nil
	case target == StartPage:
		return StartPage, nil
	case strings.HasPrefix(target, "#"):
		if fromPath == StartPage {
			return StartPage, nil
		}
		return fromPath + target, nil
	case strings.HasPrefix(target, markdown.WikiScheme):
		return l.resolveWiki(strings.TrimPrefix(target, markdown.WikiScheme))
	case IsExternal(target):
		return "", fmt.Errorf("%s: %w", target, ErrExternal)
	}

	p, frag := SplitFragment(target)
	if !strings.HasPrefix(p, "/") {
		dir := "."
		if fromPath != StartPage && fromPath != "" {
			dir = path.Dir(fromPath)
		}
		p = path.Join(dir, p)
	}
	p, err := clean(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", target, err)
	}
	return join(p, frag), nil
}

func (l *Library) resolveWiki(target string) (string, error) {
	name, frag := SplitFragment(target)
	want := markdown.WikiLinkTarget(name)
	if p, err := clean("/" + want); err == nil {
		if _, err := os.Stat(l.abs(p)); err == nil {
			return join(p, frag), nil
		}
	}

	docs, err := l.ListDocuments()
	if err != nil {
		return "", fmt.Errorf("list documents: %w", err)
	}
	base := strings.ToLower(path.Base(want))
	for _, d := range docs {
		if strings.ToLower(d.Name) == base {
			return join(d.Path, frag), nil
		}
	}
	p, err := clean("/" + want)
	if err != nil {
		return "", fmt.Errorf("%s: %w", target, err)
	}
	return join(p, frag), nil
}

// Read returns the content of the document at loc.
func (l *Library) Read(loc string) ([]byte, error) {
	p, _ := SplitFragment(loc)
	p, err := clean(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	data, err := os.ReadFile(l.abs(p))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Path returns the file system path of the document at loc, or "" for the
// start page.
func (l *Library) Path(loc string) string {
	p, _ := SplitFragment(loc)
	if p == StartPage {
		return ""
	}
	p, err := clean(p)
	if err != nil {
		return ""
	}
	return l.abs(p)
}

// Location returns the location of a file system path under the root.
func (l *Library) Location(abs string) (string, bool) {
	rel, err := filepath.Rel(l.Root, abs)
	if err != nil {
		return "", false
	}
	p, err := clean(filepath.ToSlash(rel))
	if err != nil {
		return "", false
	}
	return p, true
}

func (l *Library) abs(p string) string {
	return filepath.Join(l.Root, filepath.FromSlash(p))
}

func clean(p string) (string, error) {
	p = path.Clean(strings.TrimLeft(p, "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", ErrOutside
	}
	return p, nil
}

func join(p, frag string) string {
	if frag == "" {
		return p
	}
	return p + "#" + frag
}
