package markdown

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// span is a run of inline text with one style.
type span struct {
	text string
	tag  string // "" for plain text
	href string
}

// segment is the part of a span that landed on one line.
type segment struct {
	span      int
	line, col int
	text      string
}

type word struct {
	r    []rune
	span int
	glue bool // no space before this word
	hard bool // forced line break
}

func words(spans []span) []word {
	var out []word
	space := true
	for i, s := range spans {
		if s.text == "\n" {
			out = append(out, word{hard: true})
			space = true
			continue
		}
		rs := []rune(s.text)
		for j := 0; j < len(rs); {
			if unicode.IsSpace(rs[j]) {
				space = true
				j++
				continue
			}
			k := j
			for k < len(rs) && !unicode.IsSpace(rs[k]) {
				k++
			}
			out = append(out, word{r: rs[j:k], span: i, glue: !space})
			space = false
			j = k
		}
	}
	return out
}

// runesWidth is the number of terminal cells rs occupies.
func runesWidth(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += runewidth.RuneWidth(r)
	}
	return n
}

// textWidth is the number of terminal cells s occupies.
func textWidth(s string) int {
	return runesWidth([]rune(s))
}

// fit returns how many leading runes of rs fit in width cells.
func fit(rs []rune, width int) int {
	w := 0
	for i, r := range rs {
		w += runewidth.RuneWidth(r)
		if w > width {
			return i
		}
	}
	return len(rs)
}

// wrap fills lines of at most width cells with the spans' words and
// reports where each styled span ended up.
func wrap(spans []span, width int) ([]string, []segment) {
	width = max(width, 1)
	var lines []string
	var cur []rune
	curW := 0
	// col is in cells, from and to index runes of the line.
	type place struct{ line, col, from, to int }
	placed := make(map[int][]place)

	flush := func() {
		lines = append(lines, strings.TrimRight(string(cur), " "))
		cur = cur[:0]
		curW = 0
	}
	put := func(w []rune, span int) {
		col, from := curW, len(cur)
		cur = append(cur, w...)
		curW += runesWidth(w)
		ps := placed[span]
		line := len(lines)
		if n := len(ps); n > 0 && ps[n-1].line == line {
			ps[n-1].to = len(cur)
		} else {
			ps = append(ps, place{line, col, from, len(cur)})
		}
		placed[span] = ps
	}

	for _, w := range words(spans) {
		if w.hard {
			flush()
			continue
		}
		sep := 0
		if len(cur) > 0 && !w.glue {
			sep = 1
		}
		ww := runesWidth(w.r)
		if curW+sep+ww > width && len(cur) > 0 {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur = append(cur, ' ')
			curW++
		}
		r := w.r
		for curW+runesWidth(r) > width {
			n := fit(r, width-curW)
			if n == 0 {
				if len(cur) > 0 {
					flush()
					continue
				}
				n = 1 // a wide rune on a one cell line
			}
			put(r[:n], w.span)
			flush()
			r = r[n:]
		}
		if len(r) > 0 {
			put(r, w.span)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		flush()
	}

	var segs []segment
	for i, s := range spans {
		if s.tag == "" {
			continue
		}
		for _, p := range placed[i] {
			line := []rune(lines[p.line])
			from, to := min(p.from, len(line)), min(p.to, len(line))
			segs = append(segs, segment{
				span: i,
				line: p.line,
				col:  p.col,
				text: string(line[from:to]),
			})
		}
	}
	return lines, segs
}
