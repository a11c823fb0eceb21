// Package messaging provides the message passing between the execution
// contexts of a lookup: the UI, the page content script, the background
// pipeline and the isolated parsing context.
//
// Each primitive hides its reliability quirks behind a request/response call:
//
//   - Runtime routes JSON action messages from the UI to background handlers.
//   - TabClient asks a page's content script for the page text, with a
//     timeout and a single content-script injection when nobody is listening.
//   - ParserHost creates the parsing context on first use, at most once, and
//     sends it HTML to clean.
//   - Broadcaster fans progress events out to every listening UI surface
//     without ever blocking the pipeline.
package messaging
