// Package style binds display styles to characters.
//
// A [Registry] is an append-only list of [Option] values consulted by the
// frame sinks: the terminal backend turns a resolved option into ANSI SGR
// codes through a [Painter], the image backend uses it to pick a bold face
// and tint glyph coverage.
//
// Duplicate registrations are kept. [Registry.Resolve] scans in insertion
// order, so the first option registered for a character wins.
package style
