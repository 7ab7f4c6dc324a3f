// Package menu describes native menus as plain data so they can be built and
// tested without a GUI runtime.
package menu

// Kind of a menu entry.
type Kind int

const (
	KindAction Kind = iota
	KindCheckbox
	KindSeparator
	KindSubmenu
	KindRole
)

// Role is a platform-provided menu entry such as Copy or Quit.
type Role string

const (
	RoleAbout            Role = "about"
	RoleServices         Role = "services"
	RoleHide             Role = "hide"
	RoleHideOthers       Role = "hideOthers"
	RoleUnhide           Role = "unhide"
	RoleQuit             Role = "quit"
	RoleUndo             Role = "undo"
	RoleRedo             Role = "redo"
	RoleCut              Role = "cut"
	RoleCopy             Role = "copy"
	RolePaste            Role = "paste"
	RoleSelectAll        Role = "selectAll"
	RoleReload           Role = "reload"
	RoleForceReload      Role = "forceReload"
	RoleResetZoom        Role = "resetZoom"
	RoleZoomIn           Role = "zoomIn"
	RoleZoomOut          Role = "zoomOut"
	RoleToggleFullscreen Role = "togglefullscreen"
	RoleMinimize         Role = "minimize"
	RoleZoom             Role = "zoom"
	RoleFront            Role = "front"
	RoleClose            Role = "close"
)

// Item is one entry of a menu tree.
type Item struct {
	Kind        Kind
	Label       string
	Role        Role
	Accelerator string
	Checked     bool
	// OnClick receives the new checked state for checkboxes and false otherwise.
	OnClick func(checked bool)
	Items   []Item
}

// Action returns a clickable entry.
func Action(label string, fn func()) Item {
	return Item{Kind: KindAction, Label: label, OnClick: func(bool) { fn() }}
}

// Checkbox returns a toggle entry.
func Checkbox(label string, checked bool, fn func(checked bool)) Item {
	return Item{Kind: KindCheckbox, Label: label, Checked: checked, OnClick: fn}
}

// Separator returns a divider.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// Submenu returns a nested menu.
func Submenu(label string, items ...Item) Item {
	return Item{Kind: KindSubmenu, Label: label, Items: items}
}

// RoleItem returns a platform-provided entry.
func RoleItem(role Role) Item {
	return Item{Kind: KindRole, Role: role}
}

// WithAccelerator returns a copy of it bound to the given shortcut.
func (it Item) WithAccelerator(acc string) Item {
	it.Accelerator = acc
	return it
}

// Click invokes the handler, if any.
func (it Item) Click(checked bool) {
	if it.OnClick != nil {
		it.OnClick(checked)
	}
}

// Find returns the first entry with the given label, searching submenus
// depth first.
func Find(items []Item, label string) (Item, bool) {
	for _, it := range items {
		if it.Label == label && it.Kind != KindSubmenu {
			return it, true
		}
		if it.Kind == KindSubmenu {
			if it.Label == label {
				return it, true
			}
			if found, ok := Find(it.Items, label); ok {
				return found, true
			}
		}
	}
	return Item{}, false
}

// HasRole reports whether role appears anywhere in items.
func HasRole(items []Item, role Role) bool {
	for _, it := range items {
		if it.Kind == KindRole && it.Role == role {
			return true
		}
		if it.Kind == KindSubmenu && HasRole(it.Items, role) {
			return true
		}
	}
	return false
}
