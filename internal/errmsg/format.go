// Package errmsg formats errors into messages shown to the user.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Request cycle
	OpSearchSong  Op = "find song"
	OpAnalyzeSong Op = "analyze song"

	// Setup
	OpLoadConfig  Op = "load configuration"
	OpLoadLexicon Op = "load emotion lexicon"
	OpRenderPage  Op = "render page"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of the operation,
// e.g. the song being searched for.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
