package session

// View is one open view as it was when the session was saved.
type View struct {
	ID        string   `json:"id"`
	Location  string   `json:"location"`
	ScrollTop int      `json:"scroll_top,omitempty"`
	Back      []string `json:"back,omitempty"`
	Forward   []string `json:"forward,omitempty"`
}

// State represents persisted session state.
type State struct {
	Views  []View `json:"views,omitempty"`
	Active int    `json:"active"`
}

// Default returns the default session state: nothing open.
func Default() State {
	return State{}
}

// Current returns the active view, clamping a stale index.
func (s State) Current() (View, bool) {
	if len(s.Views) == 0 {
		return View{}, false
	}
	return s.Views[min(max(s.Active, 0), len(s.Views)-1)], true
}
