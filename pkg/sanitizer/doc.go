// Package sanitizer normalizes user-supplied identifiers before they are
// validated or used as lookup keys.
package sanitizer
