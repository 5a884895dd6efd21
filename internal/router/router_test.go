package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	loads     []string
	shown     []string
	detached  []string
	delivered []Message
	quit      bool
	fail      map[string]bool
}

func (h *fakeHost) Load(id, loc string) error {
	if h.fail[loc] {
		return errors.New("cannot open " + loc)
	}
	h.loads = append(h.loads, id+":"+loc)
	return nil
}
func (h *fakeHost) Show(id string) { h.shown = append(h.shown, id) }
func (h *fakeHost) Detach(id string) { h.detached = append(h.detached, id) }
func (h *fakeHost) Deliver(id string, m Message) { h.delivered = append(h.delivered, m) }
func (h *fakeHost) Quit() { h.quit = true }

type focusLog struct{ cur, prev string }

func (f *focusLog) SaveFocus(cur, prev string) error {
	f.cur, f.prev = cur, prev
	return nil
}

func threeViews(t *testing.T) (*Coordinator, *fakeHost, *focusLog, []string) {
	t.Helper()
	h := &fakeHost{fail: map[string]bool{}}
	fl := &focusLog{}
	c := NewCoordinator(h, fl, "index.md")
	var ids []string
	for _, loc := range []string{"a.md", "b.md", "c.md"} {
		id, err := c.Open(loc)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return c, h, fl, ids
}

func TestBusSendListen(t *testing.T) {
	b := NewBus(2)
	b.Send(Message{Command: ToggleClick})
	b.Send(Message{Command: Blur})
	b.Send(Message{Command: Quit}) // dropped

	assert.Equal(t, Message{Command: ToggleClick}, b.Listen()())
	assert.Equal(t, Message{Command: Blur}, b.Listen()())

	b.Close()
	assert.Nil(t, b.Listen()())
	b.Send(Message{Command: Quit})
	b.Close()
}

func TestIsOutbound(t *testing.T) {
	assert.True(t, IsOutbound(SwitchPrev))
	assert.True(t, IsOutbound(OpenLocation))
	assert.False(t, IsOutbound(ToggleClick))
	assert.False(t, IsOutbound("scroll-down"))
}

func TestTracksCurrentAndPrevious(t *testing.T) {
	c, _, fl, ids := threeViews(t)
	assert.Equal(t, ids[2], c.Current())
	assert.Equal(t, ids[1], c.Previous())
	assert.Equal(t, focusLog{ids[2], ids[1]}, *fl)

	c.Handle(Message{Command: SwitchFirst})
	assert.Equal(t, ids[0], c.Current())
	assert.Equal(t, ids[2], c.Previous())

	c.Handle(Message{Command: SwitchPrev})
	assert.Equal(t, ids[2], c.Current())
	assert.Equal(t, ids[0], c.Previous())
}

func TestLeftRightWrap(t *testing.T) {
	c, _, _, ids := threeViews(t)
	c.Handle(Message{Command: SwitchRight})
	assert.Equal(t, ids[0], c.Current())
	c.Handle(Message{Command: SwitchLeft})
	assert.Equal(t, ids[2], c.Current())
	c.Handle(Message{Command: SwitchLeft})
	assert.Equal(t, ids[1], c.Current())
	c.Handle(Message{Command: SwitchLast})
	assert.Equal(t, ids[2], c.Current())
}

func TestHistory(t *testing.T) {
	c, h, _, ids := threeViews(t)
	c.Handle(Message{Command: OpenLocation, Arg: "d.md"})
	c.Handle(Message{Command: OpenLocation, Arg: "e.md"})
	v, _ := c.View(ids[2])
	assert.Equal(t, "e.md", v.Location)
	assert.Equal(t, []string{"c.md", "d.md"}, v.Back)

	c.Handle(Message{Command: HistoryBack})
	c.Handle(Message{Command: HistoryBack})
	v, _ = c.View(ids[2])
	assert.Equal(t, "c.md", v.Location)
	assert.Empty(t, v.Back)
	assert.Equal(t, []string{"e.md", "d.md"}, v.Forward)

	// Nothing further back.
	n := len(h.loads)
	c.Handle(Message{Command: HistoryBack})
	assert.Len(t, h.loads, n)

	c.Handle(Message{Command: HistoryForward})
	v, _ = c.View(ids[2])
	assert.Equal(t, "d.md", v.Location)

	c.Handle(Message{Command: OpenLocation, Arg: "f.md"})
	v, _ = c.View(ids[2])
	assert.Empty(t, v.Forward)
}

func TestFailedLoadToastsAndKeepsHistory(t *testing.T) {
	c, h, _, ids := threeViews(t)
	h.fail["missing.md"] = true
	c.Handle(Message{Command: OpenLocation, Arg: "missing.md"})

	v, _ := c.View(ids[2])
	assert.Equal(t, "c.md", v.Location)
	require.Len(t, h.delivered, 1)
	assert.Equal(t, ShowToast, h.delivered[0].Command)
	assert.Equal(t, ids[2], h.delivered[0].View)
}

func TestForwardsPageCommands(t *testing.T) {
	c, h, _, ids := threeViews(t)
	c.Handle(Message{Command: ToggleClick})
	c.Handle(Message{Command: "scroll-down", View: ids[0]})
	c.Handle(Message{Command: Blur, View: "gone"})

	require.Len(t, h.delivered, 2)
	assert.Equal(t, Message{Command: ToggleClick, View: ids[2]}, h.delivered[0])
	assert.Equal(t, ids[0], h.delivered[1].View)
}

func TestCloseView(t *testing.T) {
	c, h, _, ids := threeViews(t)
	c.Handle(Message{Command: CloseView})
	assert.Equal(t, []string{ids[2]}, h.detached)
	assert.Equal(t, ids[1], c.Current())
	assert.Len(t, c.Views(), 2)

	c.Handle(Message{Command: CloseView, View: ids[0]})
	assert.Equal(t, ids[1], c.Current())
	assert.Empty(t, c.Previous())

	c.Handle(Message{Command: CloseView})
	assert.True(t, h.quit)
	assert.Empty(t, c.Current())
}

func TestNewViewOpensHome(t *testing.T) {
	c, h, _, _ := threeViews(t)
	c.Handle(Message{Command: NewView})
	assert.Len(t, c.Views(), 4)
	assert.Contains(t, h.loads[len(h.loads)-1], ":index.md")
}

func TestRestoreFocus(t *testing.T) {
	c, _, _, ids := threeViews(t)
	c.RestoreFocus(ids[0], ids[1])
	assert.Equal(t, ids[0], c.Current())
	assert.Equal(t, ids[1], c.Previous())

	c.RestoreFocus("gone", "gone")
	assert.Equal(t, ids[0], c.Current())
}

func TestQuit(t *testing.T) {
	c, h, _, _ := threeViews(t)
	c.Handle(Message{Command: Quit})
	assert.True(t, h.quit)
}

func TestSetHistoryRestoresBackStack(t *testing.T) {
	c, h, _, ids := threeViews(t)
	c.SetHistory(ids[2], []string{"x.md", "y.md"}, []string{"z.md"})
	c.SetHistory("missing", []string{"q.md"}, nil)

	c.Handle(Message{Command: HistoryBack})
	v, ok := c.View(ids[2])
	require.True(t, ok)
	assert.Equal(t, "y.md", v.Location)
	assert.Equal(t, []string{"x.md"}, v.Back)
	assert.Equal(t, []string{"z.md", "c.md"}, v.Forward)
	assert.Equal(t, ids[2]+":y.md", h.loads[len(h.loads)-1])
}
