// Package catalog renders user-facing messages in English or Japanese using
// golang.org/x/text message catalogs.
package catalog

import (
	"github.com/fwojciec/recordscout"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var _ recordscout.Localizer = (*Localizer)(nil)

// Localizer implements recordscout.Localizer with an x/text printer.
type Localizer struct {
	printer *message.Printer
	tag     language.Tag
}

// NewLocalizer returns a Localizer for the best supported match of lang,
// a BCP 47 tag such as "ja" or "en-GB". Unsupported or invalid tags fall
// back to English.
func NewLocalizer(lang string) *Localizer {
	b := newBuilder()
	tag := language.English
	if requested, err := language.Parse(lang); err == nil {
		supported := b.Languages()
		_, idx, conf := language.NewMatcher(supported).Match(requested)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Localizer{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		tag:     tag,
	}
}

// Language returns the language messages are rendered in.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Message renders key with args.
func (l *Localizer) Message(key recordscout.MessageKey, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, string(key), msg)
	}
	for key, msg := range japanese {
		_ = b.SetString(language.Japanese, string(key), msg)
	}
	return b
}
