// Package i18n provides localized user-facing strings.
//
// Message keys are the English text; English output falls back to the key
// itself, so only translations need a catalog entry.
package i18n

import (
	"log/slog"
	"strings"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{
	language.SimplifiedChinese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Printer formats localized messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for the closest supported match of tag. Unknown
// or unrelated languages get the fallback.
func New(tag language.Tag) *Printer {
	t := supported[0]
	if tag != language.Und {
		if _, idx, conf := matcher.Match(tag); conf != language.No {
			t = supported[idx]
		}
	}
	return &Printer{tag: t, p: message.NewPrinter(t)}
}

// Default returns a Printer for the user's locale.
func Default() *Printer {
	return New(Detect())
}

// Tag returns the language the Printer formats in.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// T formats the message registered under key.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Detect asks the OS for the user's locale. An unknown or unparsable
// locale yields language.Und.
func Detect() language.Tag {
	loc, err := locale.GetLocale()
	if err != nil {
		slog.Debug("detect locale", "error", err)
		return language.Und
	}
	tag, ok := parseLocale(loc)
	if !ok {
		slog.Debug("unusable locale", "locale", loc)
	}
	return tag
}

// parseLocale converts values like "zh_CN.UTF-8", "en_US@euro" or "zh-TW"
// to a tag.
func parseLocale(s string) (language.Tag, bool) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
