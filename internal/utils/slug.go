package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify produces the same slugs the web app stores: decompose, drop
// anything outside ASCII, lowercase, keep word characters, spaces and
// hyphens, then collapse runs of spaces/hyphens into a single hyphen.
//
//	"André the Giant" -> "andre-the-giant"
//	"Stone Cold Steve Austin" -> "stone-cold-steve-austin"
func Slugify(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = name
	}

	s := slugStrip.ReplaceAllString(strings.ToLower(ascii), "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}

// FirstToken returns the first whitespace-delimited word of s, or "" when s
// has none.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
