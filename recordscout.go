// Package recordscout identifies a music release from a web page and looks up
// its catalog entry. It asks a language model who and what the page is about,
// searches the web for the matching catalog page, scrapes it, and asks the
// model again for structured release metadata such as the available formats
// and whether the release is vinyl-only.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, rod/, sqlite/, goquery/).
// The orchestration lives in pipeline/ and the message passing between
// execution contexts in messaging/.
package recordscout
