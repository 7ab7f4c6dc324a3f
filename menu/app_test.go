package menu

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/figochat/desktop/i18n"
)

func noopActions(opened *[]string) Actions {
	return Actions{
		OpenExternal:    func(url string) { *opened = append(*opened, url) },
		CheckForUpdates: func() {},
		OpenDevTools:    func() {},
	}
}

func TestBuildDarwin(t *testing.T) {
	var opened []string
	p := i18n.New(language.English)
	items := Build("darwin", "FigoChat", p, noopActions(&opened))

	if len(items) != 5 {
		t.Fatalf("top-level menus = %d, want 5", len(items))
	}
	if items[0].Label != "FigoChat" || items[0].Kind != KindSubmenu {
		t.Errorf("first menu = %+v, want app menu", items[0])
	}
	for _, role := range []Role{RoleAbout, RoleServices, RoleHide, RoleHideOthers, RoleUnhide, RoleQuit, RoleFront} {
		if !HasRole(items, role) {
			t.Errorf("missing role %s", role)
		}
	}
	if HasRole(items, RoleClose) {
		t.Error("macOS window menu should not carry Close")
	}

	dev, ok := Find(items, "Developer Tools")
	if !ok || dev.Accelerator != "Cmd+Option+I" {
		t.Errorf("developer tools = %+v", dev)
	}
}

func TestBuildWindows(t *testing.T) {
	var opened []string
	p := i18n.New(language.English)
	items := Build("windows", "FigoChat", p, noopActions(&opened))

	if len(items) != 4 {
		t.Fatalf("top-level menus = %d, want 4", len(items))
	}
	if items[0].Label != "Edit" {
		t.Errorf("first menu = %q, want Edit", items[0].Label)
	}
	if HasRole(items, RoleServices) || HasRole(items, RoleFront) {
		t.Error("macOS-only roles leaked into the Windows menu")
	}
	if !HasRole(items, RoleClose) {
		t.Error("missing Close role")
	}

	dev, _ := Find(items, "Developer Tools")
	if dev.Accelerator != "Ctrl+Shift+I" {
		t.Errorf("accelerator = %q", dev.Accelerator)
	}
}

func TestHelpLinks(t *testing.T) {
	var opened []string
	p := i18n.New(language.English)
	items := Build("linux", "FigoChat", p, noopActions(&opened))

	site, ok := Find(items, "Visit Website")
	if !ok {
		t.Fatal("Visit Website missing")
	}
	site.Click(false)
	issues, _ := Find(items, "Report an Issue")
	issues.Click(false)

	if len(opened) != 2 || opened[0] != WebsiteURL || opened[1] != IssuesURL {
		t.Errorf("opened = %v", opened)
	}
}

func TestBuildLocalized(t *testing.T) {
	var opened []string
	p := i18n.New(language.SimplifiedChinese)
	items := Build("linux", "FigoChat", p, noopActions(&opened))

	if items[0].Label != "编辑" {
		t.Errorf("Edit label = %q", items[0].Label)
	}
	if _, ok := Find(items, "开发者工具"); !ok {
		t.Error("localized developer tools entry missing")
	}
}
