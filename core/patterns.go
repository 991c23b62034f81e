package core

import (
	"regexp"
	"strconv"
	"strings"
)

// Category classifies a string value by the sensitive-data shape it matches
type Category string

const (
	// CategoryEmail represents email addresses
	CategoryEmail Category = "email"

	// CategoryURL represents http/https URLs
	CategoryURL Category = "url"

	// CategoryIPv4 represents dotted-quad IPv4 addresses
	CategoryIPv4 Category = "ipv4"

	// CategoryPhone represents US phone numbers
	CategoryPhone Category = "phone"

	// CategoryNone means no recognized shape matched
	CategoryNone Category = ""
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://`)
	ipv4Pattern  = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)
	phonePattern = regexp.MustCompile(`^(\+1[-. ]?)?(\(\d{3}\)[-. ]?|\d{3}[-. ])\d{3}[-. ]\d{4}$`)
)

// classifiers are tried in this order; the first match decides the
// category, so an email-shaped value is never reported as a phone.
var classifiers = []struct {
	Category Category
	Matches  func(string) bool
}{
	{CategoryEmail, IsEmail},
	{CategoryURL, IsURL},
	{CategoryIPv4, IsIPv4},
	{CategoryPhone, IsPhone},
}

// IsEmail reports whether the whole string is shaped like an email
// address: one local part, one @, a dotted domain of letters and digits
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsURL reports whether the string starts with http:// or https://
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// IsIPv4 reports whether the string is a dotted quad with every octet
// in 0-255. Leading zeros are accepted.
func IsIPv4(s string) bool {
	groups := ipv4Pattern.FindStringSubmatch(s)
	if groups == nil {
		return false
	}
	for _, g := range groups[1:] {
		n, err := strconv.Atoi(g)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// IsPhone reports whether the string matches common US phone formats:
// optional +1, 3-3-4 digit groups separated by '-', '.' or space,
// optional parentheses around the area code
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Classify runs the matchers in priority order and returns the category
// of the first match, or CategoryNone when nothing matches. Each
// matcher sees the full string.
func Classify(s string) Category {
	for _, c := range classifiers {
		if c.Matches(s) {
			return c.Category
		}
	}
	return CategoryNone
}

// IsIDField reports whether a field name looks like an identifier
// field. The check is a case-insensitive substring match on "id", so
// names like "guidance" or "video" match too.
func IsIDField(name string) bool {
	return strings.Contains(strings.ToLower(name), "id")
}
