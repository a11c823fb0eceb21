// Package htmltomarkdown renders cleaned catalog HTML as Markdown for the
// release prompt.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/recordscout"
)

var _ recordscout.Converter = (*Converter)(nil)

var (
	// Cover art and thumbnails carry no release data.
	imageRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	blankRe = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// Converter turns a release page into prompt text. Tracklist and format
// tables survive as pipe tables so positions stay next to their titles.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with the table plugin enabled.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders html as Markdown with images dropped and blank runs
// collapsed. A page that renders to no text is an EEXTRACTION error.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", recordscout.Errorf(recordscout.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", recordscout.Wrap(recordscout.EPARSE, err, "failed to convert release page")
	}

	md = imageRe.ReplaceAllString(md, "")
	md = strings.TrimSpace(blankRe.ReplaceAllString(md, "\n\n"))
	if md == "" {
		return "", recordscout.Errorf(recordscout.EEXTRACTION, "release page has no text")
	}
	return md, nil
}
