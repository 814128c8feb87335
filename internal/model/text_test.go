package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes_UnderCapUnchanged(t *testing.T) {
	s := strings.Repeat("a", MaxPostBodyRunes)
	if got := TruncateRunes(s, MaxPostBodyRunes, TruncatedMarker); got != s {
		t.Error("text at the cap should pass through unchanged")
	}
}

func TestTruncateRunes_OverCap(t *testing.T) {
	s := strings.Repeat("a", MaxPostBodyRunes+500)
	got := TruncateRunes(s, MaxPostBodyRunes, TruncatedMarker)

	if !strings.HasSuffix(got, TruncatedMarker) {
		t.Errorf("truncated text should end with %q", TruncatedMarker)
	}
	body := strings.TrimSuffix(got, TruncatedMarker)
	if len(body) != MaxPostBodyRunes {
		t.Errorf("kept %d runes, want %d", len(body), MaxPostBodyRunes)
	}
}

func TestTruncateRunes_MultibyteSafe(t *testing.T) {
	s := strings.Repeat("世", 10)
	got := TruncateRunes(s, 5, "...")

	if !utf8.ValidString(got) {
		t.Error("truncation must not split a multibyte rune")
	}
	if got != strings.Repeat("世", 5)+"..." {
		t.Errorf("got %q", got)
	}
}
