// Package normalize turns raw sheet text into comparable keys. Display
// forms keep the original text with minimal cleanup; comparison keys are
// accent-folded, lowercased and squeezed so formatting differences never
// create spurious distinctness during duplicate matching.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	repeatMarkRe  = regexp.MustCompile(`(?i)\s*\(repeat\)\s*$`)
	repeatAnyRe   = regexp.MustCompile(`(?i)\(repeat\)`)
	nonKeyRuneRe  = regexp.MustCompile(`[^a-z0-9]+`)
	nonSlugRuneRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	dashRunRe     = regexp.MustCompile(`-{2,}`)
	slashSpaceRe  = regexp.MustCompile(`\s*/\s*`)
	schemeRe      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	emailRe       = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	ratingRe      = regexp.MustCompile(`[0-5](?:\.[0-9])?`)
	phoneJunkRe   = regexp.MustCompile(`[^\d+()\-.\s]`)
)

// accentFolder decomposes to NFKD and drops combining marks, so "Calvià"
// and "Calvia" fold to the same text.
var accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Fold returns the base comparison form of a string: accent-folded,
// lowercased, whitespace collapsed to single spaces, trimmed.
func Fold(value string) string {
	folded, _, err := transform.String(accentFolder, value)
	if err != nil {
		folded = value
	}
	folded = strings.ToLower(folded)
	folded = whitespaceRe.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// Key returns the duplicate-matching key for a name or address: Fold,
// then a trailing "(repeat)" marker stripped, then every non-alphanumeric
// rune removed. Two spellings of the same business collapse to one key.
func Key(value string) string {
	v := Fold(value)
	v = repeatMarkRe.ReplaceAllString(v, "")
	return nonKeyRuneRe.ReplaceAllString(v, "")
}

// Slugify returns a URL-safe ASCII slug of a display name.
func Slugify(value string) string {
	s := Fold(value)
	s = nonSlugRuneRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CategoryKey normalizes a raw category cell for alias lookup: Fold plus
// slash spacing squeezed to "a/b" with no surrounding spaces.
func CategoryKey(value string) string {
	v := Fold(value)
	return slashSpaceRe.ReplaceAllString(v, "/")
}

// IsRepeatName reports whether a name carries an explicit "(repeat)"
// marker anywhere, the sheet authors' convention for known duplicates.
func IsRepeatName(name string) bool {
	return repeatAnyRe.MatchString(name)
}

// WebsiteKey canonicalizes a website for duplicate matching: values
// without a scheme are treated as https, the host drops a leading
// "www.", the path drops its trailing slash, and only host+path are
// compared. Scheme, query and fragment do not participate in matching.
func WebsiteKey(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !schemeRe.MatchString(candidate) {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	path := strings.TrimRight(strings.ToLower(parsed.Path), "/")
	return host + path
}

// WebsiteURL returns the storage form of a website: the original value
// with its scheme preserved, defaulting to https when absent.
func WebsiteURL(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	if schemeRe.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// Phone extracts a phone number from a contact blob. Anything that is
// not a digit, plus, parenthesis, hyphen, dot or space is stripped; the
// result is kept only if at least 7 digits remain, which rejects
// garbage and partial contact text.
func Phone(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	compact := strings.TrimSpace(phoneJunkRe.ReplaceAllString(raw, ""))
	digits := 0
	for _, r := range compact {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 {
		return ""
	}
	return compact
}

// Email extracts the first email address from a contact blob, lowercased.
// Returns the empty string when none is present.
func Email(value string) string {
	match := emailRe.FindString(value)
	return strings.ToLower(match)
}

// Rating extracts the first 0-5 decimal token (one optional fractional
// digit) from free text. Values outside [0, 5] are rejected even when
// the pattern matched, since the token may overlap an unrelated number.
func Rating(value string) (float64, bool) {
	match := ratingRe.FindString(value)
	if match == "" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(match, 64)
	if err != nil || rating < 0 || rating > 5 {
		return 0, false
	}
	return rating, true
}
