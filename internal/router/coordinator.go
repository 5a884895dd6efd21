package router

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Host performs the actions pages cannot do themselves.
type Host interface {
	// Load shows location in the view, creating its page on first use.
	Load(viewID, location string) error
	// Show brings the view to the front.
	Show(viewID string)
	// Detach drops a closed view.
	Detach(viewID string)
	// Deliver hands a page-bound command to the view's page.
	Deliver(viewID string, m Message)
	Quit()
}

// FocusStore persists the current and previous view ids.
type FocusStore interface {
	SaveFocus(current, previous string) error
}

// View is one open document with its navigation history.
type View struct {
	ID       string
	Location string
	Back     []string
	Forward  []string
}

// Coordinator owns the views, their order and history, and which one is
// current.
type Coordinator struct {
	host  Host
	store FocusStore
	home  string

	views []*View
	cur   string
	prev  string
}

// NewCoordinator returns a coordinator with no views. home is opened by
// new-tab without an argument.
func NewCoordinator(host Host, store FocusStore, home string) *Coordinator {
	return &Coordinator{host: host, store: store, home: home}
}

// Current returns the id of the front view.
func (c *Coordinator) Current() string { return c.cur }

// Previous returns the id of the view that was in front before it.
func (c *Coordinator) Previous() string { return c.prev }

// Views returns the open views in order.
func (c *Coordinator) Views() []View {
	out := make([]View, len(c.views))
	for i, v := range c.views {
		out[i] = *v
		out[i].Back = slices.Clone(v.Back)
		out[i].Forward = slices.Clone(v.Forward)
	}
	return out
}

// View returns the view with id.
func (c *Coordinator) View(id string) (View, bool) {
	if i := c.index(id); i >= 0 {
		return *c.views[i], true
	}
	return View{}, false
}

// Open creates a view showing location and brings it to the front.
func (c *Coordinator) Open(location string) (string, error) {
	return c.Attach(uuid.NewString(), location)
}

// Attach creates a view with a known id, as when restoring a session.
func (c *Coordinator) Attach(id, location string) (string, error) {
	if err := c.host.Load(id, location); err != nil {
		return "", err
	}
	c.views = append(c.views, &View{ID: id, Location: location})
	c.Activate(id)
	return id, nil
}

// SetHistory replaces the back and forward stacks of id.
func (c *Coordinator) SetHistory(id string, back, forward []string) {
	if i := c.index(id); i >= 0 {
		c.views[i].Back = slices.Clone(back)
		c.views[i].Forward = slices.Clone(forward)
	}
}

// Activate brings id to the front and records the previous view.
func (c *Coordinator) Activate(id string) {
	if id == c.cur || c.index(id) < 0 {
		return
	}
	c.prev, c.cur = c.cur, id
	c.persist()
	c.host.Show(id)
}

// RestoreFocus reinstates persisted focus slots. Ids of views that are not
// open are ignored.
func (c *Coordinator) RestoreFocus(current, previous string) {
	if c.index(previous) >= 0 && previous != current {
		c.prev = previous
	}
	if c.index(current) >= 0 && current != c.cur {
		c.cur = current
		c.host.Show(current)
	}
	if c.prev == c.cur {
		c.prev = ""
	}
}

// Handle performs m. Coordinator commands act on the sending view;
// anything else is forwarded to the target view's page.
func (c *Coordinator) Handle(m Message) {
	from := m.View
	if from == "" {
		from = c.cur
	}

	switch m.Command {
	case SwitchFirst:
		if len(c.views) > 0 {
			c.Activate(c.views[0].ID)
		}
	case SwitchLast:
		if len(c.views) > 0 {
			c.Activate(c.views[len(c.views)-1].ID)
		}
	case SwitchLeft:
		c.step(from, -1)
	case SwitchRight:
		c.step(from, 1)
	case SwitchPrev:
		if c.index(c.prev) >= 0 {
			c.Activate(c.prev)
		} else {
			c.toast(from, "No previous view")
		}
	case HistoryBack:
		c.travel(from, true)
	case HistoryForward:
		c.travel(from, false)
	case OpenLocation:
		c.navigate(from, m.Arg)
	case NewView:
		loc := m.Arg
		if loc == "" {
			loc = c.home
		}
		if _, err := c.Open(loc); err != nil {
			c.toast(from, err.Error())
		}
	case CloseView:
		c.close(from)
	case Quit:
		c.host.Quit()
	default:
		if c.index(from) < 0 {
			log.Debug("router: dropping message for unknown view", "command", m.Command, "view", from)
			return
		}
		m.View = from
		c.host.Deliver(from, m)
	}
}

func (c *Coordinator) step(from string, d int) {
	n := len(c.views)
	i := c.index(from)
	if n == 0 || i < 0 {
		return
	}
	c.Activate(c.views[((i+d)%n+n)%n].ID)
}

func (c *Coordinator) navigate(id, location string) {
	i := c.index(id)
	if i < 0 || location == "" {
		return
	}
	v := c.views[i]
	if err := c.host.Load(id, location); err != nil {
		c.toast(id, err.Error())
		return
	}
	v.Back = append(v.Back, v.Location)
	v.Forward = nil
	v.Location = location
}

func (c *Coordinator) travel(id string, back bool) {
	i := c.index(id)
	if i < 0 {
		return
	}
	v := c.views[i]
	from, to := &v.Forward, &v.Back
	if !back {
		from, to = to, from
	}
	if len(*to) == 0 {
		return
	}
	dest := (*to)[len(*to)-1]
	if err := c.host.Load(id, dest); err != nil {
		c.toast(id, err.Error())
		return
	}
	*to = (*to)[:len(*to)-1]
	*from = append(*from, v.Location)
	v.Location = dest
}

func (c *Coordinator) close(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.views = append(c.views[:i], c.views[i+1:]...)
	c.host.Detach(id)
	if len(c.views) == 0 {
		c.cur, c.prev = "", ""
		c.persist()
		c.host.Quit()
		return
	}
	if id != c.cur {
		if id == c.prev {
			c.prev = ""
			c.persist()
		}
		return
	}

	next := c.prev
	if c.index(next) < 0 {
		next = c.views[max(i-1, 0)].ID
	}
	c.cur, c.prev = "", ""
	c.Activate(next)
}

func (c *Coordinator) toast(id, msg string) {
	if c.index(id) < 0 {
		log.Warn("router: " + msg)
		return
	}
	c.host.Deliver(id, Message{Command: ShowToast, Arg: msg, View: id})
}

func (c *Coordinator) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveFocus(c.cur, c.prev); err != nil {
		log.Warn("router: save focus history", "err", err)
	}
}

func (c *Coordinator) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.views, func(v *View) bool { return v.ID == id })
}
