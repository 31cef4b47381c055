package domain

// Constraints every synthesized card prompt carries.
const (
	RequiredPhrase   = "Happy Mother’s Day!"
	ColorPalette     = "purple"
	StyleInspiration = "the creative, nurturing, and artistic themes of Naz Alibhai's work"

	PromptTemperature = 0.9
	PromptMaxTokens   = 120
)
