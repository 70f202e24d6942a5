package sanitizer

import "strings"

// NormalizeCode strips whitespace that users paste around or inside one-time
// codes ("123 456" becomes "123456").
func NormalizeCode(code string) string {
	return strings.Join(strings.Fields(code), "")
}
