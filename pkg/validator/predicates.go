package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	hexColorRegex = regexp.MustCompile(`^#?(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	numericRegex  = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
)

// IsEmail reports whether s is a single address with a dotted domain.
func IsEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// IsURL reports whether s is an absolute URL with scheme and host.
func IsURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsPhone reports whether s is an E.164 number. Spaces, dashes, dots and
// parentheses are ignored.
func IsPhone(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, s)
	if len(cleaned) < 7 {
		return false
	}
	return phoneRegex.MatchString(cleaned)
}

// IsNumeric reports whether s is a decimal number with an optional exponent.
func IsNumeric(s string) bool {
	return numericRegex.MatchString(strings.TrimSpace(s))
}

// IsHexColor reports whether s is a #rgb or #rrggbb color. The hash is optional.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// IsUsername reports whether s contains only letters, digits, underscores and hyphens.
func IsUsername(s string) bool {
	return usernameRegex.MatchString(s)
}
