package domain

import (
	"errors"
	"testing"
)

func TestThemeSetValidate(t *testing.T) {
	set := DefaultThemeSet()
	tests := []struct {
		name    string
		theme   string
		wantErr bool
	}{
		{name: "first", theme: "preschool teacher"},
		{name: "curly apostrophe", theme: "children’s picture books"},
		{name: "empty", theme: "", wantErr: true},
		{name: "case mismatch", theme: "Author", wantErr: true},
		{name: "padded", theme: " author", wantErr: true},
		{name: "unknown", theme: "astronaut", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := set.Validate(tc.theme)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTheme) {
					t.Fatalf("Validate(%q) = %v, want ErrInvalidTheme", tc.theme, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) returned error: %v", tc.theme, err)
			}
		})
	}
}

func TestThemeSetKeepsOrderAndDropsDuplicates(t *testing.T) {
	set := NewThemeSet([]string{"b", "a", "", "b", "c"})
	got := set.List()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("List() = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if set.List()[0] != "b" {
		t.Fatal("List must return a copy")
	}
}

func TestThemesReturnsCopy(t *testing.T) {
	themes := Themes()
	if len(themes) != 12 {
		t.Fatalf("len(Themes()) = %d, want 12", len(themes))
	}
	themes[0] = "changed"
	if Themes()[0] != "preschool teacher" {
		t.Fatal("Themes must not expose the backing array")
	}
}

func TestProviderErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("openai", cause)
	if !errors.Is(err, ErrProvider) {
		t.Fatal("expected errors.Is(err, ErrProvider)")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrapped")
	}
	if NewProviderError("openai", nil) != nil {
		t.Fatal("nil cause must produce nil error")
	}
}
