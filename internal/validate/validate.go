package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reTerm = regexp.MustCompile(`^[\pL0-9 _.'&-]{1,80}$`)
	reSize = regexp.MustCompile(`^[0-9]{1,2}(\.5)?$|^(XS|S|M|L|XL|XXL)$`)
)

// Term validates a customer search term: trims and enforces a sane charset
// and maximum length.
func Term(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, reTerm.MatchString(s)
}

// Price parses a non-negative decimal price. A comma decimal separator is
// accepted because scraped source prices use it ("75,95").
func Price(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// Sizes normalizes a comma-joined size list, preserving order.
func Sizes(s string) (string, bool) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !reSize.MatchString(strings.ToUpper(p)) {
			return "", false
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return "", false
	}
	return strings.Join(out, ","), true
}

// CustomerName validates a displayable name with a reasonable max length.
func CustomerName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	return s, true
}

// ID parses a positive integer identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
