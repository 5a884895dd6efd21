package keys

import "time"

// DefaultTimeout is how long a partial sequence waits for its next chord.
const DefaultTimeout = 2000 * time.Millisecond

// Result is the outcome of feeding one chord to a Matcher.
type Result struct {
	// Command is the resolved command id, empty if nothing resolved.
	Command string
	// Consumed is true when the chord belonged to a full or partial
	// binding; the caller suppresses default handling only then.
	Consumed bool
	// Pending is true while a sequence is incomplete. The caller arms a
	// timer for Gen and reports it back through Expire.
	Pending bool
	Gen     uint64
}

// Matcher resolves chords against a Keymap. It is Idle when its buffer is
// empty and Buffering otherwise.
type Matcher struct {
	keymap Keymap
	buffer []Chord
	gen    uint64
	armed  bool
}

// NewMatcher returns an idle matcher over km.
func NewMatcher(km Keymap) *Matcher {
	return &Matcher{keymap: km}
}

// SetKeymap replaces the binding set and drops any partial sequence.
func (m *Matcher) SetKeymap(km Keymap) {
	m.keymap = km
	m.Reset()
}

// Keymap returns the active binding set.
func (m *Matcher) Keymap() Keymap {
	return m.keymap
}

// Buffering reports whether a partial sequence is recorded.
func (m *Matcher) Buffering() bool {
	return len(m.buffer) > 0
}

// Buffer returns a copy of the recorded chords.
func (m *Matcher) Buffer() []Chord {
	out := make([]Chord, len(m.buffer))
	copy(out, m.buffer)
	return out
}

// Reset clears the buffer and disarms the timeout.
func (m *Matcher) Reset() {
	m.buffer = m.buffer[:0]
	m.armed = false
}

// Feed appends c to the buffer and resolves it.
func (m *Matcher) Feed(c Chord) Result {
	m.buffer = append(m.buffer, c)

	var best *Binding
	for i := range m.keymap.Bindings {
		b := &m.keymap.Bindings[i]
		if !b.IsSequence() || !b.hasPrefix(m.buffer) {
			continue
		}
		if best == nil || len(b.Chords) > len(best.Chords) {
			best = b
		}
	}

	if best != nil {
		if len(best.Chords) == len(m.buffer) {
			m.Reset()
			return Result{Command: best.Command, Consumed: true}
		}
		m.gen++
		m.armed = true
		return Result{Consumed: true, Pending: true, Gen: m.gen}
	}

	// Impossible prefix: the chord may still mean something alone.
	m.Reset()
	for _, b := range m.keymap.Bindings {
		if len(b.Chords) == 1 && b.Chords[0] == c {
			return Result{Command: b.Command, Consumed: true}
		}
	}
	return Result{}
}

// Expire handles a fired timeout. A stale generation is ignored. For the
// current one the buffer is cleared and the abandoned chords are returned.
func (m *Matcher) Expire(gen uint64) ([]Chord, bool) {
	if !m.armed || gen != m.gen {
		return nil, false
	}
	abandoned := m.Buffer()
	m.Reset()
	return abandoned, true
}

// Continuations lists the bindings that can still complete the buffer.
func (m *Matcher) Continuations() []Binding {
	if len(m.buffer) == 0 {
		return nil
	}
	var out []Binding
	for _, b := range m.keymap.Bindings {
		if b.IsSequence() && len(b.Chords) > len(m.buffer) && b.hasPrefix(m.buffer) {
			out = append(out, b)
		}
	}
	return out
}
