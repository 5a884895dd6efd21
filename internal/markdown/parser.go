// Package markdown parses notes and lays them out as render trees.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown processing.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(
			extension.TaskList,
			extension.Strikethrough,
			extension.Linkify,
		)),
	}
}

// ParsedNote is a note split into metadata and a goldmark tree.
type ParsedNote struct {
	Content     []byte
	Frontmatter *Frontmatter
	WikiLinks   []WikiLink

	// Source is the text the tree was parsed from: the body with wiki
	// links rewritten. Tree segments index into it.
	Source []byte
	Tree   ast.Node
}

// Parse parses markdown content.
func (p *Parser) Parse(content []byte) *ParsedNote {
	fm := ExtractFrontmatter(content)
	src := RewriteWikiLinks(fm.Body(content))
	return &ParsedNote{
		Content:     content,
		Frontmatter: fm,
		WikiLinks:   ExtractWikiLinks(content),
		Source:      src,
		Tree:        p.md.Parser().Parse(text.NewReader(src)),
	}
}

// Title returns the frontmatter title, else the first level-one heading,
// else "".
func (pn *ParsedNote) Title() string {
	if pn.Frontmatter != nil && pn.Frontmatter.Title != "" {
		return pn.Frontmatter.Title
	}
	var title string
	_ = ast.Walk(pn.Tree, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
			title = plainText(h, pn.Source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
