package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var themes = []string{"preschool teacher", "author", "illustrator"}

func TestNewCapsAndCopiesThemes(t *testing.T) {
	many := make([]string, 20)
	for i := range many {
		many[i] = string(rune('a' + i))
	}
	s := New(many)
	assert.Equal(t, MaxCards, s.Len())
	assert.Len(t, s.Themes(), MaxCards)

	input := append([]string(nil), themes...)
	s = New(input)
	input[0] = "changed"
	assert.Equal(t, "preschool teacher", s.Current().Theme)
	assert.False(t, s.Current().Ready())
}

func TestNavigationClamps(t *testing.T) {
	s := New(themes)
	assert.Equal(t, 0, s.Prev().Index())

	s = s.Next().Next().Next().Next()
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, "illustrator", s.Current().Theme)

	s = s.Prev()
	assert.Equal(t, 1, s.Index())

	empty := New(nil)
	assert.Equal(t, 0, empty.Next().Index())
	assert.Equal(t, Card{}, empty.Current())
}

func TestGenerateLifecycle(t *testing.T) {
	s := New(themes).Next()

	s, idx, theme, ok := s.BeginGenerate()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "author", theme)
	assert.True(t, s.Loading())

	_, _, _, ok = s.BeginGenerate()
	assert.False(t, ok, "second generation must be refused while loading")
	assert.Equal(t, 1, s.Next().Index(), "navigation is frozen while loading")

	done := s.CompleteGenerate(idx, Card{Prompt: "p", ImageURL: "/images/a.png", ImageDownloadURL: "/images/a.png", Model: "gpt-image-1"})
	assert.False(t, done.Loading())
	assert.Empty(t, done.Err())
	card := done.Current()
	assert.Equal(t, "author", card.Theme)
	assert.True(t, card.Ready())

	assert.False(t, s.Cards()[1].Ready(), "previous state must be untouched")
}

func TestCompleteRejectsMismatchedSlot(t *testing.T) {
	s, idx, _, ok := New(themes).Next().BeginGenerate()
	require.True(t, ok)
	assert.Equal(t, idx, s.Pending())

	out := s.CompleteGenerate(idx+1, Card{ImageDownloadURL: "/images/x.png"})
	assert.False(t, out.Loading())
	assert.Equal(t, -1, out.Pending())
	for _, c := range out.Cards() {
		assert.False(t, c.Ready())
	}
}

func TestCompleteIgnoredWithoutPendingGeneration(t *testing.T) {
	s := New(themes)
	assert.Equal(t, -1, s.Pending())

	out := s.CompleteGenerate(0, Card{ImageDownloadURL: "/images/x.png"})
	assert.False(t, out.Cards()[0].Ready())
}

func TestCompleteForcesSlotTheme(t *testing.T) {
	s, idx, _, _ := New(themes).BeginGenerate()
	out := s.CompleteGenerate(idx, Card{Theme: "ignored", ImageDownloadURL: "/images/x.png"})
	assert.True(t, out.Cards()[0].Ready())
	assert.Equal(t, "preschool teacher", out.Cards()[0].Theme)
}

func TestCompleteOutOfRangeOnlyClearsLoading(t *testing.T) {
	s, _, _, _ := New(themes).BeginGenerate()
	out := s.CompleteGenerate(7, Card{ImageDownloadURL: "/images/x.png"})
	assert.False(t, out.Loading())
	for _, c := range out.Cards() {
		assert.False(t, c.Ready())
	}
}

func TestFailGenerate(t *testing.T) {
	s, _, _, _ := New(themes).BeginGenerate()
	failed := s.FailGenerate("")
	assert.False(t, failed.Loading())
	assert.Equal(t, FailureMessage, failed.Err())
	assert.False(t, failed.Current().Ready())

	_, _, _, ok := failed.BeginGenerate()
	assert.True(t, ok)
	s2, _, _, _ := failed.BeginGenerate()
	assert.Empty(t, s2.Err(), "starting a new generation clears the error")
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{theme: "preschool teacher", want: "mothers-day-card-preschool-teacher.png"},
		{theme: "children’s picture books", want: "mothers-day-card-childrens-picture-books.png"},
		{theme: "Café  Owner!", want: "mothers-day-card-cafe-owner.png"},
		{theme: "", want: "mothers-day-card-image.png"},
		{theme: "   ", want: "mothers-day-card-image.png"},
	}
	for _, tc := range tests {
		t.Run(tc.theme, func(t *testing.T) {
			assert.Equal(t, tc.want, DownloadName(Card{Theme: tc.theme}))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Early Childhood Educator", Label("early childhood educator"))
	assert.Equal(t, "Cake Designer", Label("  cake designer "))
}
