package app

import (
	"log/slog"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/figochat/desktop/i18n"
	"github.com/figochat/desktop/menu"
)

var roles = map[menu.Role]application.Role{
	menu.RoleAbout:            application.About,
	menu.RoleServices:         application.ServicesMenu,
	menu.RoleHide:             application.Hide,
	menu.RoleHideOthers:       application.HideOthers,
	menu.RoleUnhide:           application.UnHide,
	menu.RoleQuit:             application.Quit,
	menu.RoleUndo:             application.Undo,
	menu.RoleRedo:             application.Redo,
	menu.RoleCut:              application.Cut,
	menu.RoleCopy:             application.Copy,
	menu.RolePaste:            application.Paste,
	menu.RoleSelectAll:        application.SelectAll,
	menu.RoleReload:           application.Reload,
	menu.RoleForceReload:      application.ForceReload,
	menu.RoleResetZoom:        application.ResetZoom,
	menu.RoleZoomIn:           application.ZoomIn,
	menu.RoleZoomOut:          application.ZoomOut,
	menu.RoleToggleFullscreen: application.ToggleFullscreen,
	menu.RoleMinimize:         application.Minimise,
	menu.RoleZoom:             application.Zoom,
	menu.RoleClose:            application.CloseWindow,
}

// menuRenderer turns menu.Item trees into Wails menus.
type menuRenderer struct {
	app *application.App
	p   *i18n.Printer
	// front backs the "bring all to front" entry, which has no Wails role.
	front func()
}

func (r menuRenderer) render(items []menu.Item) *application.Menu {
	m := r.app.NewMenu()
	r.add(m, items)
	return m
}

func (r menuRenderer) add(m *application.Menu, items []menu.Item) {
	for _, it := range items {
		item := it
		switch item.Kind {
		case menu.KindSeparator:
			m.AddSeparator()
		case menu.KindSubmenu:
			r.add(m.AddSubmenu(item.Label), item.Items)
		case menu.KindRole:
			r.addRole(m, item.Role)
		case menu.KindCheckbox:
			m.AddCheckbox(item.Label, item.Checked).OnClick(func(ctx *application.Context) {
				item.Click(ctx.ClickedMenuItem().Checked())
			})
		default:
			mi := m.Add(item.Label)
			if item.Accelerator != "" {
				mi.SetAccelerator(item.Accelerator)
			}
			mi.OnClick(func(*application.Context) { item.Click(false) })
		}
	}
}

func (r menuRenderer) addRole(m *application.Menu, role menu.Role) {
	if role == menu.RoleFront {
		m.Add(r.p.T("Bring All to Front")).OnClick(func(*application.Context) {
			if r.front != nil {
				r.front()
			}
		})
		return
	}
	wr, ok := roles[role]
	if !ok {
		slog.Warn("unknown menu role", "role", role)
		return
	}
	m.AddRole(wr)
}
