package markdown

import (
	"bytes"
	"strings"
)

// WikiScheme prefixes the href of a rewritten wiki link.
const WikiScheme = "wiki:"

// WikiLink represents a parsed [[wiki link]].
type WikiLink struct {
	Target  string // note name/path
	Section string // #section (if present)
	Alias   string // |alias (if present)
	Line    int    // 1-based line number
	Col     int    // 0-based byte column of "[["
	End     int    // byte column just past "]]"
}

// Text returns what the link displays.
func (l WikiLink) Text() string {
	switch {
	case l.Alias != "":
		return l.Alias
	case l.Section != "" && l.Target == "":
		return l.Section
	case l.Section != "":
		return l.Target + " > " + l.Section
	}
	return l.Target
}

// Href returns the link as a location: "wiki:target#section".
func (l WikiLink) Href() string {
	h := WikiScheme + l.Target
	if l.Section != "" {
		h += "#" + l.Section
	}
	return h
}

// ExtractWikiLinks finds all [[wiki links]] in markdown content, skipping
// frontmatter, fenced code and inline code.
// Supports [[note]], [[note#section]], [[note|alias]], [[note#section|alias]].
func ExtractWikiLinks(content []byte) []WikiLink {
	var links []WikiLink
	scanWikiLinks(content, func(_ []byte, found []WikiLink) {
		links = append(links, found...)
	})
	return links
}

// RewriteWikiLinks turns wiki links into inline markdown links whose
// destination is the link's Href, so a CommonMark parser sees them.
func RewriteWikiLinks(content []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(content))
	scanWikiLinks(content, func(line []byte, found []WikiLink) {
		last := 0
		for _, l := range found {
			out.Write(line[last:l.Col])
			out.WriteString("[" + escapeLinkText(l.Text()) + "](<" + l.Href() + ">)")
			last = l.End
		}
		out.Write(line[last:])
	})
	return out.Bytes()
}

func escapeLinkText(s string) string {
	r := strings.NewReplacer(`[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}

// scanWikiLinks calls fn once per line, in order, with the links found on
// that line. Lines keep their line endings.
func scanWikiLinks(content []byte, fn func(line []byte, links []WikiLink)) {
	inFrontmatter := false
	fence := ""
	for i, line := range bytes.SplitAfter(content, []byte("\n")) {
		lineNum := i + 1
		text := strings.TrimRight(string(line), "\r\n")
		trimmed := strings.TrimSpace(text)

		// Skip frontmatter
		if lineNum == 1 && trimmed == "---" {
			inFrontmatter = true
			fn(line, nil)
			continue
		}
		if inFrontmatter {
			if trimmed == "---" {
				inFrontmatter = false
			}
			fn(line, nil)
			continue
		}

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			fn(line, nil)
			continue
		}
		if f := fenceMarker(trimmed); f != "" {
			fence = f
			fn(line, nil)
			continue
		}

		fn(line, wikiLinksInLine(text, lineNum))
	}
}

func fenceMarker(trimmed string) string {
	for _, f := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, f) {
			return f
		}
	}
	return ""
}

func wikiLinksInLine(line string, lineNum int) []WikiLink {
	var links []WikiLink
	col := 0
	for col < len(line)-3 {
		// Inline code hides links.
		tick := strings.IndexByte(line[col:], '`')
		idx := strings.Index(line[col:], "[[")
		if idx == -1 {
			break
		}
		if tick != -1 && tick < idx {
			closing := strings.IndexByte(line[col+tick+1:], '`')
			if closing == -1 {
				break
			}
			col += tick + 1 + closing + 1
			continue
		}
		start := col + idx + 2

		end := strings.Index(line[start:], "]]")
		if end == -1 {
			break
		}

		inner := line[start : start+end]
		if strings.TrimSpace(inner) == "" {
			col = start + end + 2
			continue
		}

		link := WikiLink{Line: lineNum, Col: col + idx, End: start + end + 2}

		target, alias, _ := strings.Cut(inner, "|")
		target, section, _ := strings.Cut(target, "#")
		link.Target = strings.TrimSpace(target)
		link.Section = strings.TrimSpace(section)
		link.Alias = strings.TrimSpace(alias)

		links = append(links, link)
		col = link.End
	}
	return links
}

// WikiLinkTarget resolves a wiki link target to a file name:
// "note" -> "note.md", "folder/note" -> "folder/note.md".
func WikiLinkTarget(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || strings.HasSuffix(target, ".md") {
		return target
	}
	return target + ".md"
}
