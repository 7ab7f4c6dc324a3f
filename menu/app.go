package menu

import (
	"github.com/figochat/desktop/i18n"
)

// Links opened from the Help menu.
const (
	WebsiteURL = "https://figochat.com"
	IssuesURL  = "https://github.com/figochat/desktop/issues"
)

// Actions are the application callbacks the menu triggers.
type Actions struct {
	OpenExternal    func(url string)
	CheckForUpdates func()
	OpenDevTools    func()
}

// Build returns the application menu for goos. macOS gets the application
// submenu and a "bring all to front" entry; other platforms get Close.
func Build(goos, appName string, p *i18n.Printer, a Actions) []Item {
	var items []Item

	if goos == "darwin" {
		items = append(items, Submenu(appName,
			RoleItem(RoleAbout),
			Separator(),
			RoleItem(RoleServices),
			Separator(),
			RoleItem(RoleHide),
			RoleItem(RoleHideOthers),
			RoleItem(RoleUnhide),
			Separator(),
			RoleItem(RoleQuit),
		))
	}

	items = append(items,
		Submenu(p.T("Edit"),
			RoleItem(RoleUndo),
			RoleItem(RoleRedo),
			Separator(),
			RoleItem(RoleCut),
			RoleItem(RoleCopy),
			RoleItem(RolePaste),
			RoleItem(RoleSelectAll),
		),
		Submenu(p.T("View"),
			RoleItem(RoleReload),
			RoleItem(RoleForceReload),
			Separator(),
			RoleItem(RoleResetZoom),
			RoleItem(RoleZoomIn),
			RoleItem(RoleZoomOut),
			Separator(),
			RoleItem(RoleToggleFullscreen),
		),
	)

	windowItems := []Item{
		RoleItem(RoleMinimize),
		RoleItem(RoleZoom),
	}
	if goos == "darwin" {
		windowItems = append(windowItems, Separator(), RoleItem(RoleFront))
	} else {
		windowItems = append(windowItems, RoleItem(RoleClose))
	}
	items = append(items, Submenu(p.T("Window"), windowItems...))

	devToolsAcc := "Ctrl+Shift+I"
	if goos == "darwin" {
		devToolsAcc = "Cmd+Option+I"
	}

	items = append(items, Submenu(p.T("Help"),
		Action(p.T("Visit Website"), func() { a.OpenExternal(WebsiteURL) }),
		Action(p.T("Report an Issue"), func() { a.OpenExternal(IssuesURL) }),
		Action(p.T("Check for Updates..."), a.CheckForUpdates),
		Separator(),
		Action(p.T("Developer Tools"), a.OpenDevTools).WithAccelerator(devToolsAcc),
	))

	return items
}
