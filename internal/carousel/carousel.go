// Package carousel holds the client-side card carousel state. Every
// transition returns a new State and never mutates its receiver.
package carousel

const (
	// MaxCards caps the number of themed cards in a carousel.
	MaxCards = 12

	FailureMessage = "Failed to generate image. Please try again."
)

// Card is one generated greeting card.
type Card struct {
	Theme            string
	Prompt           string
	ImageURL         string
	ImageDownloadURL string
	Model            string
}

// Ready reports whether the card has a downloadable image.
func (c Card) Ready() bool {
	return c.ImageDownloadURL != ""
}

// State is an immutable snapshot of the carousel. pending is the slot a
// running generation will fill, or -1.
type State struct {
	themes  []string
	cards   []Card
	index   int
	loading bool
	pending int
	err     string
}

// New builds a carousel with one empty card per theme, keeping at most
// MaxCards themes.
func New(themes []string) State {
	if len(themes) > MaxCards {
		themes = themes[:MaxCards]
	}
	ts := append([]string(nil), themes...)
	cards := make([]Card, len(ts))
	for i, theme := range ts {
		cards[i] = Card{Theme: theme}
	}
	return State{themes: ts, cards: cards, pending: -1}
}

func (s State) Themes() []string { return append([]string(nil), s.themes...) }
func (s State) Cards() []Card    { return append([]Card(nil), s.cards...) }
func (s State) Len() int         { return len(s.cards) }
func (s State) Index() int       { return s.index }
func (s State) Loading() bool    { return s.loading }
func (s State) Err() string      { return s.err }

// Pending returns the slot a running generation will fill, or -1.
func (s State) Pending() int { return s.pending }

// Current returns the card under the cursor. An empty carousel yields the
// zero Card.
func (s State) Current() Card {
	if s.index < 0 || s.index >= len(s.cards) {
		return Card{}
	}
	return s.cards[s.index]
}

// Next moves the cursor right, stopping at the last card. It is a no-op while
// a generation is in flight.
func (s State) Next() State {
	if s.loading || s.index >= len(s.cards)-1 {
		return s
	}
	s.index++
	return s
}

// Prev moves the cursor left, stopping at the first card.
func (s State) Prev() State {
	if s.loading || s.index <= 0 {
		return s
	}
	s.index--
	return s
}

// BeginGenerate marks the current card as generating and returns its index
// and theme. ok is false when a generation is already running or the
// carousel is empty.
func (s State) BeginGenerate() (next State, index int, theme string, ok bool) {
	if s.loading || len(s.cards) == 0 {
		return s, -1, "", false
	}
	s.loading = true
	s.pending = s.index
	s.err = ""
	return s, s.index, s.themes[s.index], true
}

// CompleteGenerate stores card at index, which must be the slot captured by
// BeginGenerate. Without a generation in flight it is a no-op; a mismatched
// index ends the generation without storing the card.
func (s State) CompleteGenerate(index int, card Card) State {
	if !s.loading {
		return s
	}
	if index != s.pending || index < 0 || index >= len(s.cards) {
		return s.clearPending()
	}
	cards := s.Cards()
	card.Theme = s.themes[index]
	cards[index] = card
	s.cards = cards
	return s.clearPending()
}

// FailGenerate ends the in-flight generation with a user-facing message.
func (s State) FailGenerate(msg string) State {
	if msg == "" {
		msg = FailureMessage
	}
	s = s.clearPending()
	s.err = msg
	return s
}

// FailLoad records a failure to load themes.
func (s State) FailLoad(msg string) State {
	s.err = msg
	return s
}

func (s State) clearPending() State {
	s.loading = false
	s.pending = -1
	s.err = ""
	return s
}
