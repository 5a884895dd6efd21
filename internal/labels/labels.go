// Package labels generates the two-character codes shown over seek targets.
package labels

import "sync"

// Left and right hold the characters typed with each hand. They are disjoint
// so no label repeats a character.
const (
	Left  = "qwertasdfgzxcv"
	Right = "yuiophjklnm;"
)

var (
	once    sync.Once
	catalog []string
	index   map[string]int
	alpha   map[rune]bool
)

func build() {
	catalog = make([]string, 0, len(Left)*len(Right))
	index = make(map[string]int, len(Left)*len(Right))
	alpha = make(map[rune]bool, len(Left)+len(Right))
	for _, l := range Left {
		alpha[l] = true
		for _, r := range Right {
			label := string([]rune{l, r})
			index[label] = len(catalog)
			catalog = append(catalog, label)
		}
	}
	for _, r := range Right {
		alpha[r] = true
	}
}

// Catalog returns every label in its fixed order: left pool outer, right
// pool inner. The returned slice must not be modified.
func Catalog() []string {
	once.Do(build)
	return catalog
}

// Assign returns labels for n targets, clamped to the catalog size.
func Assign(n int) []string {
	c := Catalog()
	if n < 0 {
		n = 0
	}
	if n > len(c) {
		n = len(c)
	}
	out := make([]string, n)
	copy(out, c[:n])
	return out
}

// Index returns the catalog position of label, or -1.
func Index(label string) int {
	once.Do(build)
	if i, ok := index[label]; ok {
		return i
	}
	return -1
}

// InAlphabet reports whether r occurs in any label.
func InAlphabet(r rune) bool {
	once.Do(build)
	return alpha[r]
}

// Size is the number of labels in the catalog.
func Size() int {
	return len(Left) * len(Right)
}

// Alphabet returns every character that occurs in a label, left pool first.
func Alphabet() []rune {
	return []rune(Left + Right)
}
