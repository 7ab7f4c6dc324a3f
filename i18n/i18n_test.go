package i18n

import (
	"runtime"
	"testing"

	"golang.org/x/text/language"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "zh_CN.UTF-8", want: "zh-CN", wantOK: true},
		{in: "en_US@euro", want: "en-US", wantOK: true},
		{in: "de", want: "de", wantOK: true},
		{in: "zh-TW", want: "zh-TW", wantOK: true},
		{in: "C", wantOK: false},
		{in: "POSIX", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tag, ok := parseLocale(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && tag.String() != tt.want {
				t.Errorf("tag = %q, want %q", tag.String(), tt.want)
			}
		})
	}
}

func TestNewMatchesSupported(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want language.Tag
	}{
		{tag: language.MustParse("zh-CN"), want: language.SimplifiedChinese},
		{tag: language.MustParse("en-GB"), want: language.English},
		{tag: language.MustParse("zh-TW"), want: language.SimplifiedChinese},
		{tag: language.Und, want: language.SimplifiedChinese},
		{tag: language.MustParse("sw"), want: language.SimplifiedChinese},
		{tag: language.MustParse("en"), want: language.English},
	}

	for _, tt := range tests {
		if got := New(tt.tag).Tag(); got != tt.want {
			t.Errorf("New(%v).Tag() = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	zh := New(language.SimplifiedChinese)
	en := New(language.English)

	if got := zh.T("Open %s", "FigoChat"); got != "打开 FigoChat" {
		t.Errorf("zh Open = %q", got)
	}
	if got := en.T("Open %s", "FigoChat"); got != "Open FigoChat" {
		t.Errorf("en Open = %q", got)
	}
	if got := zh.T("Quit"); got != "退出" {
		t.Errorf("zh Quit = %q", got)
	}
	if got := zh.T("Bring All to Front"); got != "全部置于顶层" {
		t.Errorf("zh Bring All to Front = %q", got)
	}
}

func TestDetectFromEnv(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("locale comes from the environment only on linux")
	}
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")

	if got := Default().Tag(); got != language.English {
		t.Errorf("Default().Tag() = %v, want en", got)
	}

	t.Setenv("LC_ALL", "zh_CN.UTF-8")
	if got := Default().Tag(); got != language.SimplifiedChinese {
		t.Errorf("Default().Tag() = %v, want zh-Hans", got)
	}
}
