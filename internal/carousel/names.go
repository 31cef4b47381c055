package carousel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const downloadPrefix = "mothers-day-card-"

// DownloadName is the suggested filename for saving card's image.
func DownloadName(card Card) string {
	slug := Slug(card.Theme)
	if slug == "" {
		slug = "image"
	}
	return downloadPrefix + slug + ".png"
}

// Label renders a theme in title case for display.
func Label(theme string) string {
	return cases.Title(language.English).String(strings.TrimSpace(theme))
}

// Slug folds s to lowercase ASCII words joined by single dashes. Accents are
// stripped and apostrophes dropped so "children’s" becomes "childrens".
func Slug(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r == '\'' || r == '’':
			continue
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
