package markdown

import (
	"bytes"
	"strings"
)

// Frontmatter represents YAML frontmatter.
type Frontmatter struct {
	Title   string
	Tags    []string
	Raw     map[string]string
	EndLine int // number of lines the block takes, delimiters included
	EndByte int // offset of the first byte after the block
}

// ExtractFrontmatter parses the --- delimited block at the top of content.
// Only flat "key: value" lines are understood.
func ExtractFrontmatter(content []byte) *Frontmatter {
	lines := bytes.SplitAfter(content, []byte("\n"))

	// First line must be ---
	if strings.TrimSpace(string(lines[0])) != "---" {
		return nil
	}
	offset := len(lines[0])

	fm := &Frontmatter{Raw: make(map[string]string)}
	for i, raw := range lines[1:] {
		line := string(raw)
		offset += len(raw)

		if strings.TrimSpace(line) == "---" {
			fm.EndLine = i + 2
			fm.EndByte = offset
			break
		}

		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		fm.Raw[key] = val

		switch key {
		case "title":
			fm.Title = val
		case "tags":
			// Parse [tag1, tag2] or tag1, tag2
			for _, tag := range strings.Split(strings.Trim(val, "[]"), ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					fm.Tags = append(fm.Tags, tag)
				}
			}
		}
	}

	if fm.EndLine == 0 {
		return nil // unclosed frontmatter
	}
	return fm
}

// Body returns content without its frontmatter.
func (fm *Frontmatter) Body(content []byte) []byte {
	if fm == nil {
		return content
	}
	return content[fm.EndByte:]
}
