package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// WithColors applies user color overrides onto base. Keys are field names
// in lower snake case ("label_bg", "link"); unknown keys and empty values
// are ignored. It returns the keys it did not recognize.
func WithColors(base Theme, colors map[string]string) (Theme, []string) {
	t := base
	fields := map[string]*lipgloss.Color{
		"bg":           &t.Bg,
		"accent":       &t.Accent,
		"subtle":       &t.Subtle,
		"text":         &t.Text,
		"dim":          &t.Dim,
		"border":       &t.Border,
		"status_bg":    &t.StatusBg,
		"status_fg":    &t.StatusFg,
		"error":        &t.Error,
		"heading":      &t.Heading,
		"link":         &t.Link,
		"code":         &t.Code,
		"code_bg":      &t.CodeBg,
		"focus":        &t.Focus,
		"label_bg":     &t.LabelBg,
		"label_fg":     &t.LabelFg,
		"toast_bg":     &t.ToastBg,
		"toast_fg":     &t.ToastFg,
		"normal_mode":  &t.NormalMode,
		"click_mode":   &t.ClickMode,
		"focus_mode":   &t.FocusMode,
		"address_mode": &t.AddressMode,
	}

	var unknown []string
	for k, v := range colors {
		dst, ok := fields[strings.ToLower(k)]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if isSet(v) {
			*dst = lipgloss.Color(v)
		}
	}
	return t, unknown
}

func isSet(c string) bool {
	return strings.TrimSpace(c) != ""
}
