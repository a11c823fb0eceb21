package recordscout

import (
	"net/url"
	"strings"
)

// Schemes and hosts the browser refuses to let extensions script.
var (
	restrictedPrefixes = []string{
		"chrome://",
		"chrome-extension://",
		"moz-extension://",
		"about:",
		"file://",
		"data:",
		"javascript:",
		"edge://",
		"safari-extension://",
	}
	restrictedHosts = []string{
		"chrome.google.com",
		"chromewebstore.google.com",
		"addons.mozilla.org",
	}
)

// IsRestrictedURL reports whether content scripts cannot run on the page at
// rawURL. Empty and unparseable URLs are restricted.
func IsRestrictedURL(rawURL string) bool {
	if rawURL == "" {
		return true
	}
	for _, prefix := range restrictedPrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	for _, host := range restrictedHosts {
		if strings.Contains(u.Hostname(), host) {
			return true
		}
	}
	return false
}
