package sanitize

import "strings"

// DefaultMax bounds any field that does not carry its own cap.
const DefaultMax = 256

// Clean collapses whitespace runs to single spaces, trims the edges, and
// truncates the result to max runes. It never fails: empty or whitespace-only
// input yields "". Every value is passed through here before it is used as a
// query term or sent to an external service.
func Clean(v string, max int) string {
	if max <= 0 {
		max = DefaultMax
	}
	s := strings.Join(strings.Fields(v), " ")
	if r := []rune(s); len(r) > max {
		s = strings.TrimRight(string(r[:max]), " ")
	}
	return s
}

// CleanDefault applies Clean with the default cap.
func CleanDefault(v string) string {
	return Clean(v, DefaultMax)
}
