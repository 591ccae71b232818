package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)
var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ErrInvalidTimeFormat is returned when a clock time is not "HH:mm"
var ErrInvalidTimeFormat = errors.New("invalid time format")

// Fold reduces s to a search key: whitespace collapsed, diacritics stripped
// and case folded, so "Würselen" and "wurselen" compare equal.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = wsRe.ReplaceAllString(s, " ")
	t := norm.NFKD.String(s)
	b := make([]rune, 0, len(t))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b = append(b, r)
	}
	return cases.Fold().String(string(b))
}

// ContainsFolded reports whether any of fields contains query after folding
// both sides. An empty query matches everything.
func ContainsFolded(query string, fields ...string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// ParseHHMM converts an "HH:mm" clock time to minutes after midnight.
// "24:00" is accepted as the end of the day.
func ParseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return 24 * 60, nil
	}
	m := hhmmRe.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrInvalidTimeFormat
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}
