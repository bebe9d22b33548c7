package capture

import "regexp"

// emailPattern is a syntactic sanity check only: a non-whitespace local
// part, an @, and a domain containing a dot. No DNS/MX verification, no
// normalization.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
