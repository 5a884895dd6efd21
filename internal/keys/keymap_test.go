package keys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeymapArray(t *testing.T) {
	km, err := ParseKeymap([]byte(`[
		{"key": "j", "command": "scroll-line-down"},
		{"key": "d", "ctrl": true, "command": "scroll-down"},
		[{"key": "g"}, {"key": "g", "command": "scroll-to-top"}]
	]`))
	require.NoError(t, err)
	require.Equal(t, 3, km.Len())
	assert.Equal(t, Binding{Chords: []Chord{{Key: "j"}}, Command: "scroll-line-down"}, km.Bindings[0])
	assert.Equal(t, Chord{Key: "d", Ctrl: true}, km.Bindings[1].Chords[0])
	assert.Equal(t, []Chord{{Key: "g"}, {Key: "g"}}, km.Bindings[2].Chords)
	assert.Equal(t, "scroll-to-top", km.Bindings[2].Command)
}

func TestParseKeymapObject(t *testing.T) {
	km, err := ParseKeymap([]byte(`{"bindings": [{"key": "Escape", "command": "blur"}]}`))
	require.NoError(t, err)
	require.Equal(t, 1, km.Len())
	assert.Equal(t, "Escape", km.Bindings[0].Chords[0].Key)
}

func TestParseKeymapErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"invalid json":   `[{"key": "j"`,
		"not a list":     `{"key": "j"}`,
		"no command":     `[{"key": "j"}]`,
		"no key":         `[{"command": "blur"}]`,
		"short sequence": `[[{"key": "g", "command": "x"}]]`,
		"bad item":       `[["g", {"key": "g", "command": "x"}]]`,
		"scalar record":  `["j"]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseKeymap([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	km, err := Default()
	require.NoError(t, err)
	assert.Empty(t, Validate(km))

	m := NewMatcher(km)
	m.Feed(Chord{Key: "g"})
	assert.Equal(t, "scroll-to-top", m.Feed(Chord{Key: "g"}).Command)
	assert.Equal(t, "toggle-label-click", m.Feed(Chord{Key: "f"}).Command)
	assert.Equal(t, "scroll-to-bottom", m.Feed(Chord{Key: "G", Shift: true}).Command)
	assert.Equal(t, "history-back", m.Feed(Chord{Key: "o", Ctrl: true}).Command)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	km, err := FileSource{}.Load()
	require.NoError(t, err)
	assert.NotZero(t, km.Len())

	km, err = FileSource{Path: filepath.Join(dir, "missing.json")}.Load()
	require.NoError(t, err)
	assert.NotZero(t, km.Len())

	path := filepath.Join(dir, "keymap.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"key": "q", "command": "quit"}]`), 0o644))
	km, err = FileSource{Path: path}.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, km.Len())

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = FileSource{Path: path}.Load()
	assert.Error(t, err)
}

func TestOnceLoadsOnce(t *testing.T) {
	calls := 0
	src := Once(SourceFunc(func() (Keymap, error) {
		calls++
		return Keymap{}, errors.New("broken")
	}))
	_, err1 := src.Load()
	_, err2 := src.Load()
	assert.Equal(t, 1, calls)
	assert.EqualError(t, err1, "broken")
	assert.Equal(t, err1, err2)
}
