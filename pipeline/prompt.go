package pipeline

import (
	"fmt"

	"github.com/fwojciec/recordscout"
)

// BuildIdentifyPrompt builds the prompt asking the model for the artist and
// title featured on a scraped page.
func BuildIdentifyPrompt(content, url string) string {
	return fmt.Sprintf(`You are analyzing web page content to extract music information. The content may include navigation menus, advertisements, and other irrelevant text - please focus only on the main content about music.

From the following web page content (URL: %s), extract the primary artist and album/release/song title. Ignore any promotional text, navigation elements, social media widgets, advertisements, or other non-content elements.

Format your response as a JSON object with keys: artist, title. If information is not found, use null.

Example: { "artist": "Artist Name", "title": "Album/Song Title" }

Web page content:
%s`, url, content)
}

// BuildReleasePrompt builds the prompt asking the model for release
// metadata and format availability from cleaned catalog text.
func BuildReleasePrompt(catalog *recordscout.Catalog, content, catalogURL string) string {
	return fmt.Sprintf(`Given the following text from a %[1]s page (URL: %[2]s), extract the artist, album/release title, year, any relevant catalog numbers or identifiers, and analyze the available formats.

Pay special attention to format information such as:
- Vinyl formats: Vinyl, LP, 12", 7", 45 RPM, EP (vinyl), Album (vinyl), Single (vinyl)
- Non-vinyl formats: CD, Digital, Cassette, Tape, MP3, FLAC, Streaming

Determine if this release is vinyl-only (only available in vinyl formats) or if it has other format options.

Format the output as a JSON object with keys: artist, title, year, identifiers, url, isVinylOnly, availableFormats.

- isVinylOnly: boolean (true if only vinyl formats are available, false if other formats exist)
- availableFormats: array of strings listing all detected formats

Example: { "artist": "Artist Name", "title": "Album Title", "year": 2023, "identifiers": "CAT-123", "url": "https://www.%[3]s/release/123-Artist-Title", "isVinylOnly": true, "availableFormats": ["Vinyl", "LP", "12\""] }

If a piece of information is not found, use null for strings/numbers or empty array for availableFormats.

Text: %[4]s`, catalog.Name(), catalogURL, catalog.Domain, content)
}
