package dom

import "strings"

var textInputTypes = map[string]bool{
	"":         true,
	"text":     true,
	"search":   true,
	"url":      true,
	"email":    true,
	"password": true,
	"number":   true,
	"tel":      true,
}

var interactiveRoles = map[string]bool{
	"button":           true,
	"link":             true,
	"checkbox":         true,
	"radio":            true,
	"switch":           true,
	"tab":              true,
	"menuitem":         true,
	"menuitemcheckbox": true,
	"menuitemradio":    true,
	"option":           true,
	"combobox":         true,
	"textbox":          true,
	"searchbox":        true,
	"slider":           true,
	"treeitem":         true,
}

// IsTextInput reports whether e consumes typed characters.
func IsTextInput(e *Element) bool {
	if e == nil {
		return false
	}
	if e.Editable {
		return true
	}
	switch e.tag() {
	case "textarea", "select":
		return true
	case "input":
		return textInputTypes[strings.ToLower(e.Type)]
	}
	role := strings.ToLower(e.Role)
	return role == "textbox" || role == "searchbox"
}

// IsInteractive reports whether e is a native control, an anchor, or
// carries an interactive role or a click action.
func IsInteractive(e *Element) bool {
	if e == nil {
		return false
	}
	switch e.tag() {
	case "a":
		return e.Href != "" || e.Action != ""
	case "button", "select", "textarea", "summary":
		return true
	case "input":
		return strings.ToLower(e.Type) != "hidden"
	}
	if interactiveRoles[strings.ToLower(e.Role)] {
		return true
	}
	return e.Action != "" || e.Editable
}

// IsFocusable reports whether e can receive focus.
func IsFocusable(e *Element) bool {
	return e != nil && (IsInteractive(e) || e.TabIndex != 0)
}

// IsDialog reports whether e is a dialog box.
func IsDialog(e *Element) bool {
	if e == nil {
		return false
	}
	role := strings.ToLower(e.Role)
	return e.tag() == "dialog" || role == "dialog" || role == "alertdialog"
}

func scrollsY(e *Element) bool {
	switch strings.ToLower(e.Style.OverflowY) {
	case "auto", "scroll":
		return true
	}
	return false
}

func hidden(e *Element) bool {
	return strings.EqualFold(e.Style.Display, "none")
}

// invisible resolves the inherited visibility property.
func invisible(e *Element) bool {
	for a := e; a != nil; a = a.Parent {
		switch strings.ToLower(a.Style.Visibility) {
		case "hidden", "collapse":
			return true
		case "visible":
			return false
		}
	}
	return false
}
