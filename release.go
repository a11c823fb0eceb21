package recordscout

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const codeFence = "```"

// StripCodeFence removes an optional ```json Markdown fence around a model
// response. The text between the opening marker and the last ``` is returned
// trimmed. Text without the marker is only trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, codeFence+"json") {
		return s
	}
	body := s[len(codeFence+"json"):]
	if end := strings.LastIndex(body, codeFence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// IdentifiedWork is the artist and title the model found on a page.
type IdentifiedWork struct {
	Artist *string `json:"artist"`
	Title  *string `json:"title"`
}

// ArtistName returns the trimmed artist, or "" when absent.
func (w *IdentifiedWork) ArtistName() string {
	if w.Artist == nil {
		return ""
	}
	return strings.TrimSpace(*w.Artist)
}

// TitleName returns the trimmed title, or "" when absent.
func (w *IdentifiedWork) TitleName() string {
	if w.Title == nil {
		return ""
	}
	return strings.TrimSpace(*w.Title)
}

// Validate returns EINSUFFICIENT when neither artist nor title is present.
func (w *IdentifiedWork) Validate() error {
	if w.ArtistName() == "" && w.TitleName() == "" {
		return Errorf(EINSUFFICIENT, "neither artist nor title identified")
	}
	return nil
}

// ParseIdentifiedWork decodes a model response into an IdentifiedWork,
// stripping an optional code fence first. Returns EPARSE on invalid JSON.
func ParseIdentifiedWork(text string) (*IdentifiedWork, error) {
	var w IdentifiedWork
	if err := decodeJSON(text, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ReleaseRecord is the structured release metadata produced by the second
// model call.
type ReleaseRecord struct {
	Artist           string      `json:"artist"`
	Title            string      `json:"title"`
	Year             Year        `json:"year"`
	Identifiers      Identifiers `json:"identifiers"`
	URL              string      `json:"url"`
	IsVinylOnly      *bool       `json:"isVinylOnly"`
	AvailableFormats []string    `json:"availableFormats"`
}

// ParseReleaseRecord decodes the raw text of a successful ProcessResponse.
// Returns EPARSE on invalid JSON.
func ParseReleaseRecord(text string) (*ReleaseRecord, error) {
	var r ReleaseRecord
	if err := decodeJSON(text, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeJSON(text string, v any) error {
	s := StripCodeFence(text)
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return Wrap(EPARSE, err, "model response is not valid JSON")
	}
	return nil
}

// Year is a release year. Models emit it as a number, a string or null;
// zero means unknown.
type Year int

// UnmarshalJSON accepts numbers, numeric strings and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*y = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Years like "1998?" or "unknown" are not worth failing the record over.
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// String returns the year, or "" when unknown.
func (y Year) String() string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y))
}

// Identifiers holds catalog numbers and similar identifiers. Models emit a
// single string, an array of strings, or null.
type Identifiers []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (ids *Identifiers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*ids = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*ids = list
		return nil
	case len(data) > 0 && data[0] != '"':
		*ids = Identifiers{string(data)}
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s == "" {
			*ids = nil
			return nil
		}
		*ids = Identifiers{s}
		return nil
	}
}

// String joins the identifiers with ", ".
func (ids Identifiers) String() string {
	return strings.Join(ids, ", ")
}
