package utils

// Truncate shortens s to at most n runes, appending an ellipsis when text
// was cut. Rune-based so multi-byte characters are never split.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
