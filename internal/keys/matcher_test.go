package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k string) Chord { return Chord{Key: k} }

func seq(cmd string, ks ...string) Binding {
	b := Binding{Command: cmd}
	for _, k := range ks {
		b.Chords = append(b.Chords, key(k))
	}
	return b
}

func TestSequenceResolves(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{seq("scroll-to-top", "g", "g")}})

	r := m.Feed(key("g"))
	assert.True(t, r.Consumed)
	assert.True(t, r.Pending)
	assert.Empty(t, r.Command)
	assert.True(t, m.Buffering())

	r = m.Feed(key("g"))
	assert.Equal(t, "scroll-to-top", r.Command)
	assert.True(t, r.Consumed)
	assert.False(t, r.Pending)
	assert.False(t, m.Buffering())
}

func TestTimeoutAbandonsSequence(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{seq("scroll-to-top", "g", "g")}})

	r := m.Feed(key("g"))
	require.True(t, r.Pending)

	abandoned, ok := m.Expire(r.Gen)
	require.True(t, ok)
	assert.Equal(t, []Chord{key("g")}, abandoned)
	assert.False(t, m.Buffering())

	// A lone g afterwards starts over instead of completing.
	r = m.Feed(key("g"))
	assert.Empty(t, r.Command)
	assert.True(t, r.Pending)

	// Left alone it times out too, and nothing ever resolved.
	abandoned, ok = m.Expire(r.Gen)
	require.True(t, ok)
	assert.Equal(t, []Chord{key("g")}, abandoned)
	assert.False(t, m.Buffering())
	assert.Empty(t, m.Buffer())
}

func TestStaleExpireIgnored(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{seq("quit", "Z", "Z", "Z")}})

	first := m.Feed(key("Z"))
	second := m.Feed(key("Z"))
	require.True(t, second.Pending)
	require.NotEqual(t, first.Gen, second.Gen)

	_, ok := m.Expire(first.Gen)
	assert.False(t, ok)
	assert.Len(t, m.Buffer(), 2)

	r := m.Feed(key("Z"))
	assert.Equal(t, "quit", r.Command)

	// Once resolved, even the current generation is disarmed.
	_, ok = m.Expire(second.Gen)
	assert.False(t, ok)
}

func TestSequencePrefixWinsOverSingle(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{
		seq("single-g", "g"),
		seq("scroll-to-top", "g", "g"),
	}})

	r := m.Feed(key("g"))
	assert.Empty(t, r.Command)
	assert.True(t, r.Pending)

	r = m.Feed(key("g"))
	assert.Equal(t, "scroll-to-top", r.Command)
}

func TestImpossiblePrefixFallsBackToSingle(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{
		seq("scroll-to-top", "g", "g"),
		seq("scroll-line-down", "j"),
	}})

	m.Feed(key("g"))
	r := m.Feed(key("j"))
	assert.Equal(t, "scroll-line-down", r.Command)
	assert.True(t, r.Consumed)
	assert.False(t, m.Buffering())
}

func TestUnboundChordNotConsumed(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{seq("scroll-line-down", "j")}})

	r := m.Feed(key("q"))
	assert.Equal(t, Result{}, r)
	assert.False(t, m.Buffering())
}

func TestModifiersMustMatchExactly(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{{
		Chords:  []Chord{{Key: "d", Ctrl: true}},
		Command: "scroll-down",
	}}})

	assert.Empty(t, m.Feed(key("d")).Command)
	assert.Equal(t, "scroll-down", m.Feed(Chord{Key: "d", Ctrl: true}).Command)
	assert.Empty(t, m.Feed(Chord{Key: "d", Ctrl: true, Shift: true}).Command)
}

func TestContinuations(t *testing.T) {
	km := Keymap{Bindings: []Binding{
		seq("scroll-to-top", "g", "g"),
		seq("switch-to-right-tab", "g", "t"),
		seq("copy-current-location", "y", "y"),
	}}
	m := NewMatcher(km)
	assert.Nil(t, m.Continuations())

	m.Feed(key("g"))
	conts := m.Continuations()
	require.Len(t, conts, 2)
	assert.Equal(t, "scroll-to-top", conts[0].Command)
	assert.Equal(t, "switch-to-right-tab", conts[1].Command)
}

func TestSetKeymapResets(t *testing.T) {
	m := NewMatcher(Keymap{Bindings: []Binding{seq("scroll-to-top", "g", "g")}})
	r := m.Feed(key("g"))
	m.SetKeymap(Keymap{})
	assert.False(t, m.Buffering())
	_, ok := m.Expire(r.Gen)
	assert.False(t, ok)
}
