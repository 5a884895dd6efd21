package library

import (
	"bytes"
	"fmt"
	"path"
	"strings"
)

// StartContent generates the markdown of the start page: the most visited
// documents first, then every document grouped by directory.
func (l *Library) StartContent(recent []string) ([]byte, error) {
	docs, err := l.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Library\n\n")
	fmt.Fprintf(&buf, "%d documents in `%s`.\n\n", len(docs), l.Root)

	known := make(map[string]bool, len(docs))
	for _, d := range docs {
		known[d.Path] = true
	}
	var shown int
	for _, loc := range recent {
		p, _ := SplitFragment(loc)
		if !known[p] {
			continue
		}
		if shown == 0 {
			buf.WriteString("## Recent\n\n")
		}
		fmt.Fprintf(&buf, "- %s\n", link(p))
		shown++
	}
	if shown > 0 {
		buf.WriteString("\n")
	}

	if len(docs) == 0 {
		buf.WriteString("No documents yet.\n")
		return buf.Bytes(), nil
	}
	buf.WriteString("## Documents\n\n")
	dir := ""
	for _, d := range docs {
		if dd := path.Dir(d.Path); dd != dir && dd != "." {
			dir = dd
			fmt.Fprintf(&buf, "\n**%s/**\n\n", dir)
		}
		fmt.Fprintf(&buf, "- %s\n", link(d.Path))
	}
	return buf.Bytes(), nil
}

func link(p string) string {
	name := strings.TrimSuffix(path.Base(p), ".md")
	return "[" + name + "](</" + p + ">)"
}
