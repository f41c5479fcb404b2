package launch

import (
	"slices"
	"testing"
)

func TestSuggestions(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "frobnicate")
	writeExecutable(t, dir, "frobnicat")
	writeExecutable(t, dir, "unrelated")
	writePlainFile(t, dir, "frobnicata")

	got := suggestions("frobnicata", dir)

	if !slices.Contains(got, "frobnicate") || !slices.Contains(got, "frobnicat") {
		t.Errorf("suggestions = %v, want near names included", got)
	}
	if slices.Contains(got, "unrelated") {
		t.Errorf("suggestions = %v, distant name must be excluded", got)
	}
	if slices.Contains(got, "frobnicata") {
		t.Errorf("suggestions = %v, non-executable entry must be excluded", got)
	}
}

func TestSuggestionsCapped(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"prog1", "prog2", "prog3", "prog4", "prog5"} {
		writeExecutable(t, dir, name)
	}

	got := suggestions("prog", dir)
	if len(got) > maxSuggestions {
		t.Errorf("suggestions returned %d entries, cap is %d", len(got), maxSuggestions)
	}
}

func TestSuggestionsUnreadableDir(t *testing.T) {
	if got := suggestions("prog", "/no/such/dir"); len(got) != 0 {
		t.Errorf("suggestions = %v, want none for unreadable search path", got)
	}
}
