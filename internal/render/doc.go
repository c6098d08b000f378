// Package render turns a document with suggestion marks into styled output.
//
// Spans splits the text into plain and marked runs. The runs can be
// written as ANSI-colored text for a terminal stream, or laid out into
// grapheme cells and drawn on a tcell screen.
package render
