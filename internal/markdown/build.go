package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/pfassina/vimnav/internal/dom"
)

// DefaultCodeHeight is how many rows a code block shows before it scrolls.
const DefaultCodeHeight = 8

// Options controls layout.
type Options struct {
	Left       int // column of the content
	Top        int // row of the first block
	Width      int // content width in cells
	CodeHeight int
}

// Heading is a laid-out heading and its fragment id.
type Heading struct {
	Level   int
	Text    string
	ID      string
	Element *dom.Element
}

// Rendered is a note laid out as a render tree rooted at Body.
type Rendered struct {
	Body     *dom.Element
	Title    string
	Headings []Heading
	Links    []*dom.Element
}

// Anchor returns the heading element with the given fragment id.
func (r *Rendered) Anchor(id string) *dom.Element {
	id = Slugify(id)
	for _, h := range r.Headings {
		if h.ID == id {
			return h.Element
		}
	}
	return nil
}

// Build lays out a parsed note.
func Build(note *ParsedNote, opts Options) *Rendered {
	if opts.CodeHeight <= 0 {
		opts.CodeHeight = DefaultCodeHeight
	}
	opts.Width = max(opts.Width, 8)

	b := &builder{
		src:  note.Source,
		opts: opts,
		y:    opts.Top,
		out:  &Rendered{Title: note.Title()},
		ids:  make(map[string]int),
	}
	body := dom.New("body")
	b.blocks(note.Tree, body, opts.Left, opts.Width, true)
	body.Rect = dom.Rect{X: 0, Y: opts.Top, W: opts.Left*2 + opts.Width, H: max(b.y-opts.Top, 1)}
	b.out.Body = body
	return b.out
}

type builder struct {
	src  []byte
	opts Options
	y    int
	out  *Rendered
	ids  map[string]int
}

func (b *builder) blocks(parent ast.Node, into *dom.Element, x, w int, gaps bool) {
	first := true
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if !first && gaps {
			b.y++
		}
		first = false
		b.block(n, into, x, w)
	}
}

func (b *builder) block(n ast.Node, into *dom.Element, x, w int) {
	switch n := n.(type) {
	case *ast.Heading:
		el := b.textBlock("h"+strconv.Itoa(n.Level), n, x, w)
		id := b.uniqueID(Slugify(plainText(n, b.src)))
		el.SetAttr("id", id)
		b.out.Headings = append(b.out.Headings, Heading{
			Level: n.Level, Text: plainText(n, b.src), ID: id, Element: el,
		})
		into.Append(el)

	case *ast.Paragraph, *ast.TextBlock:
		into.Append(b.textBlock("p", n, x, w))

	case *ast.ThematicBreak:
		el := &dom.Element{Tag: "hr", Lines: []string{strings.Repeat("─", w)}}
		el.Rect = dom.Rect{X: x, Y: b.y, W: w, H: 1}
		b.y++
		into.Append(el)

	case *ast.FencedCodeBlock:
		el := b.code(n, x, w)
		if lang := n.Language(b.src); lang != nil {
			el.SetAttr("language", string(lang))
		}
		into.Append(el)

	case *ast.CodeBlock:
		into.Append(b.code(n, x, w))

	case *ast.HTMLBlock:
		el := b.code(n, x, w)
		el.Tag = "div"
		el.SetAttr("html", "true")
		into.Append(el)

	case *ast.Blockquote:
		el := dom.New("blockquote")
		top := b.y
		b.blocks(n, el, x+2, w-2, true)
		el.Rect = dom.Rect{X: x, Y: top, W: w, H: b.y - top}
		into.Append(el)

	case *ast.List:
		b.list(n, into, x, w)

	default:
		// Unknown blocks still show their text.
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			b.blocks(n, into, x, w, true)
		}
	}
}

func (b *builder) list(n *ast.List, into *dom.Element, x, w int) {
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	el := dom.New(tag)
	top := b.y
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if item != n.FirstChild() && !n.IsTight {
			b.y++
		}
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}

		li := dom.New("li")
		itemTop := b.y
		if box := taskCheckBox(item); box != nil {
			cb := &dom.Element{Tag: "input", Type: "checkbox", Checked: box.IsChecked}
			cb.Rect = dom.Rect{X: x, Y: b.y, W: 3, H: 1}
			cb.Lines = []string{checkboxText(box.IsChecked)}
			li.Append(cb)
			marker = "    "
		}
		li.Lines = []string{strings.TrimRightFunc(marker, func(r rune) bool { return r == ' ' })}
		indent := textWidth(marker)
		b.blocks(item, li, x+indent, w-indent, !n.IsTight)
		if b.y == itemTop {
			b.y++ // empty item
		}
		li.Rect = dom.Rect{X: x, Y: itemTop, W: w, H: b.y - itemTop}
		el.Append(li)
	}
	el.Rect = dom.Rect{X: x, Y: top, W: w, H: b.y - top}
	into.Append(el)
}

func checkboxText(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func taskCheckBox(item ast.Node) *extast.TaskCheckBox {
	block := item.FirstChild()
	if block == nil {
		return nil
	}
	box, _ := block.FirstChild().(*extast.TaskCheckBox)
	return box
}

// textBlock lays out the inline content of n as one wrapped block.
func (b *builder) textBlock(tag string, n ast.Node, x, w int) *dom.Element {
	var spans []span
	b.inlines(n, "", "", &spans)
	lines, segs := wrap(spans, w)

	el := &dom.Element{Tag: tag, Lines: lines}
	el.Rect = dom.Rect{X: x, Y: b.y, W: w, H: len(lines)}

	var last *dom.Element
	for _, sg := range segs {
		s := spans[sg.span]
		child := &dom.Element{
			Tag:  s.tag,
			Text: sg.text,
			Rect: dom.Rect{X: x + sg.col, Y: b.y + sg.line, W: textWidth(sg.text), H: 1},
		}
		if s.tag == "a" {
			if last != nil && last.Attr("span") == strconv.Itoa(sg.span) {
				// A wrapped link is one target; the tail is decoration.
				child.SetAttr("continues", "true")
			} else {
				child.Href = s.href
				last = child
				b.out.Links = append(b.out.Links, child)
			}
			child.SetAttr("span", strconv.Itoa(sg.span))
		}
		if s.tag == "img" {
			child.SetAttr("src", s.href)
		}
		el.Append(child)
	}
	b.y += len(lines)
	return el
}

func (b *builder) code(n ast.Node, x, w int) *dom.Element {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
		lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	el := &dom.Element{Tag: "pre", Lines: lines, ScrollHeight: len(lines)}
	h := len(lines)
	if h > b.opts.CodeHeight {
		h = b.opts.CodeHeight
		el.Style.OverflowY = "auto"
	}
	el.Rect = dom.Rect{X: x, Y: b.y, W: w, H: h}
	b.y += h
	return el
}

func (b *builder) uniqueID(id string) string {
	if id == "" {
		id = "section"
	}
	n := b.ids[id]
	b.ids[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, n)
}

// inlines flattens the inline children of n into styled spans. Inside a
// link everything is link text.
func (b *builder) inlines(n ast.Node, tag, href string, out *[]span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			*out = append(*out, span{text: string(c.Segment.Value(b.src)), tag: tag, href: href})
			switch {
			case c.HardLineBreak():
				*out = append(*out, span{text: "\n"})
			case c.SoftLineBreak():
				*out = append(*out, span{text: " "})
			}
		case *ast.String:
			*out = append(*out, span{text: string(c.Value), tag: tag, href: href})
		case *ast.CodeSpan:
			b.inlines(c, inner(tag, "code"), href, out)
		case *ast.Emphasis:
			t := "em"
			if c.Level >= 2 {
				t = "strong"
			}
			b.inlines(c, inner(tag, t), href, out)
		case *extast.Strikethrough:
			b.inlines(c, inner(tag, "del"), href, out)
		case *ast.Link:
			b.inlines(c, "a", string(c.Destination), out)
		case *ast.AutoLink:
			*out = append(*out, span{text: string(c.Label(b.src)), tag: "a", href: string(c.URL(b.src))})
		case *ast.Image:
			alt := plainText(c, b.src)
			if alt == "" {
				alt = "image"
			}
			*out = append(*out, span{text: "▣ " + alt, tag: "img", href: string(c.Destination)})
		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				sb.Write(seg.Value(b.src))
			}
			*out = append(*out, span{text: sb.String(), tag: inner(tag, "html"), href: href})
		case *extast.TaskCheckBox:
			// Drawn by the list item.
		default:
			b.inlines(c, tag, href, out)
		}
	}
}

func inner(outer, tag string) string {
	if outer == "a" {
		return outer
	}
	return tag
}

// plainText concatenates the text under n.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
