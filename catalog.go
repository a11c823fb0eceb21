package recordscout

import (
	"regexp"
	"strings"
)

// DefaultCatalogDomain is the release database searched by default.
const DefaultCatalogDomain = "discogs.com"

// Catalog describes the external release database the pipeline looks up.
type Catalog struct {
	Domain  string
	pattern *regexp.Regexp
}

// NewCatalog returns a Catalog for domain, e.g. "discogs.com".
func NewCatalog(domain string) *Catalog {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	return &Catalog{
		Domain:  domain,
		pattern: regexp.MustCompile(`https?://(www\.)?` + regexp.QuoteMeta(domain) + `/[^"'\s<>]+`),
	}
}

// SearchQuery builds a site-scoped web search query from the non-blank parts
// of the identified work.
func (c *Catalog) SearchQuery(w *IdentifiedWork) string {
	parts := []string{"site:" + c.Domain}
	if artist := w.ArtistName(); artist != "" {
		parts = append(parts, artist)
	}
	if title := w.TitleName(); title != "" {
		parts = append(parts, title)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// FindURL returns the first catalog URL in raw search-result HTML, or ""
// when there is none. Matching is textual: the URL runs from the scheme up
// to the first quote, whitespace or angle bracket.
func (c *Catalog) FindURL(html string) string {
	return c.pattern.FindString(html)
}

// Name returns a display name for the catalog, derived from the first label
// of its domain: "discogs.com" becomes "Discogs".
func (c *Catalog) Name() string {
	label, _, _ := strings.Cut(c.Domain, ".")
	if label == "" {
		return c.Domain
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
