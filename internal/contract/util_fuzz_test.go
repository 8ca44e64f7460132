package contract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParseAssignment fuzzes the key=value parser used by --set and --criterion.
func FuzzParseAssignment(f *testing.F) {
	seeds := []string{
		"written_1=80",
		" Participation = 75,5 ",
		"project=",
		"=40",
		"no-equals",
		"a=b=c",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		key, value, err := ParseAssignment(s)
		if err != nil {
			return
		}
		if key == "" || key != strings.TrimSpace(key) {
			t.Errorf("key %q is empty or untrimmed", key)
		}
		if value != strings.TrimSpace(value) {
			t.Errorf("value %q is untrimmed", value)
		}
	})
}

// FuzzTruncateText fuzzes name truncation with random text and widths.
func FuzzTruncateText(f *testing.F) {
	f.Add("Ada Lovelace", 5)
	f.Add("Çağrı Öztürk", 8)
	f.Add("", 0)
	f.Add("short", 40)

	f.Fuzz(func(t *testing.T, text string, width int) {
		if width < 0 || width > 200 || !utf8.ValidString(text) {
			return
		}
		got := TruncateText(text, width)
		if utf8.RuneCountInString(text) <= width && got != text {
			t.Errorf("text that fits was changed: %q -> %q", text, got)
		}
	})
}

// FuzzParseBoolString checks that parsing never panics and accepts only known spellings.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "NO", "true", "0", "maybe", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
