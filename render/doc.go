// Package render produces the text the search tool returns: adaptive
// content previews, GitHub links rebuilt from stored path metadata, and
// the result listing itself.
//
// Everything here is a pure function of its inputs.
package render
