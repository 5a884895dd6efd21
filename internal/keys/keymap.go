package keys

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
)

//go:embed default_keymap.json
var defaultKeymap []byte

var ErrMalformed = errors.New("malformed keymap")

// Source loads a keymap. Pages load once, lazily, on the first key event.
type Source interface {
	Load() (Keymap, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Keymap, error)

func (f SourceFunc) Load() (Keymap, error) { return f() }

// FileSource reads a keymap file. An empty Path, or a file that does not
// exist, yields the built-in keymap.
type FileSource struct {
	Path string
}

func (s FileSource) Load() (Keymap, error) {
	if s.Path == "" {
		return Default()
	}
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return Keymap{}, fmt.Errorf("read keymap: %w", err)
	}
	km, err := ParseKeymap(data)
	if err != nil {
		return Keymap{}, fmt.Errorf("parse keymap %s: %w", s.Path, err)
	}
	return km, nil
}

// Once wraps src so it is loaded at most once; every caller sees the
// first result.
func Once(src Source) Source {
	return &onceSource{src: src}
}

type onceSource struct {
	src  Source
	once sync.Once
	km   Keymap
	err  error
}

func (s *onceSource) Load() (Keymap, error) {
	s.once.Do(func() { s.km, s.err = s.src.Load() })
	return s.km, s.err
}

// Default returns the built-in keymap.
func Default() (Keymap, error) {
	return ParseKeymap(defaultKeymap)
}

// DefaultJSON returns the raw built-in keymap document.
func DefaultJSON() []byte {
	out := make([]byte, len(defaultKeymap))
	copy(out, defaultKeymap)
	return out
}

// ParseKeymap decodes a keymap document. The top level is an array of
// binding records, or an object whose "bindings" field is one. A record is
// either a chord object carrying "command", or an array of two or more chord
// objects whose last element carries "command".
func ParseKeymap(data []byte) (Keymap, error) {
	if !gjson.ValidBytes(data) {
		return Keymap{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("bindings")
	}
	if !list.IsArray() {
		return Keymap{}, fmt.Errorf("%w: expected a list of bindings", ErrMalformed)
	}

	var km Keymap
	for i, rec := range list.Array() {
		b, err := parseRecord(rec)
		if err != nil {
			return Keymap{}, fmt.Errorf("%w: binding %d: %v", ErrMalformed, i, err)
		}
		km.Bindings = append(km.Bindings, b)
	}
	return km, nil
}

func parseRecord(rec gjson.Result) (Binding, error) {
	switch {
	case rec.IsObject():
		c, err := parseChord(rec)
		if err != nil {
			return Binding{}, err
		}
		cmd := rec.Get("command").String()
		if cmd == "" {
			return Binding{}, ErrNoCommand
		}
		return Binding{Chords: []Chord{c}, Command: cmd}, nil

	case rec.IsArray():
		items := rec.Array()
		if len(items) < 2 {
			return Binding{}, errors.New("a sequence needs at least two keys")
		}
		b := Binding{Chords: make([]Chord, 0, len(items))}
		for _, item := range items {
			if !item.IsObject() {
				return Binding{}, errors.New("sequence items must be objects")
			}
			c, err := parseChord(item)
			if err != nil {
				return Binding{}, err
			}
			b.Chords = append(b.Chords, c)
		}
		b.Command = items[len(items)-1].Get("command").String()
		if b.Command == "" {
			return Binding{}, ErrNoCommand
		}
		return b, nil
	}
	return Binding{}, errors.New("expected an object or an array")
}

func parseChord(obj gjson.Result) (Chord, error) {
	key := obj.Get("key")
	if key.Type != gjson.String || key.String() == "" {
		return Chord{}, errors.New(`missing "key"`)
	}
	return Chord{
		Key:   key.String(),
		Ctrl:  obj.Get("ctrl").Bool(),
		Alt:   obj.Get("alt").Bool(),
		Meta:  obj.Get("meta").Bool(),
		Shift: obj.Get("shift").Bool(),
	}, nil
}
