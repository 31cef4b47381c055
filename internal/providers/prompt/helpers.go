package prompt

import (
	"fmt"
	"strings"
	"unicode"

	"cardgen/internal/domain"
)

// buildInstruction renders the fixed card brief for theme.
func buildInstruction(theme string) (system, user string) {
	system = fmt.Sprintf(
		"You are a creative assistant. Write a warm, visually descriptive prompt for a Mother’s Day card themed as a \"%s\". "+
			"The prompt should inspire a beautiful, animated, illustrated image with a %s color palette, "+
			"and should include the phrase \"%s\" in a style inspired by %s.",
		theme, domain.ColorPalette, domain.RequiredPhrase, domain.StyleInspiration,
	)
	user = fmt.Sprintf("Mother's Day card for a \"%s\".", theme)
	return system, user
}

// cleanText drops control characters and folds whitespace runs, including
// newlines and tabs, into single spaces.
func cleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
