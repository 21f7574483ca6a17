package keys

import "testing"

func TestSplitShiftedPunctuation(t *testing.T) {
	cases := []struct {
		token string
		base  string
	}{
		{"!", "1"}, {"@", "2"}, {"#", "3"}, {"$", "4"}, {"%", "5"},
		{"^", "6"}, {"&", "7"}, {"*", "8"}, {"(", "9"}, {")", "0"},
		{"_", "-"}, {"+", "="}, {"{", "["}, {"}", "]"}, {"|", "\\"},
		{":", ";"}, {"\"", "'"}, {"<", ","}, {">", "."}, {"?", "/"},
		{"~", "`"},
	}
	for _, c := range cases {
		base, shift := Split(c.token)
		if !shift {
			t.Errorf("Split(%q): expected shifted", c.token)
		}
		if base != c.base {
			t.Errorf("Split(%q): base = %q, want %q", c.token, base, c.base)
		}
	}
}

func TestSplitUppercaseLetters(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		base, shift := Split(string(c))
		if !shift {
			t.Errorf("Split(%q): expected shifted", string(c))
		}
		if want := string(c + ('a' - 'A')); base != want {
			t.Errorf("Split(%q): base = %q, want %q", string(c), base, want)
		}
	}
}

func TestSplitUnshifted(t *testing.T) {
	for _, token := range []string{"1", "q", "-", ";", "Space", ""} {
		base, shift := Split(token)
		if shift {
			t.Errorf("Split(%q): unexpected shift", token)
		}
		if base != token {
			t.Errorf("Split(%q): base = %q, want unchanged", token, base)
		}
	}
}

func TestCodeCoversEveryShiftBase(t *testing.T) {
	// Every base a shifted token can decompose into must resolve to a
	// physical code, otherwise a mapped note would silently press nothing.
	for token := range shiftedPunctuation {
		base, _ := Split(token)
		if _, ok := Code(base); !ok {
			t.Errorf("no key code for base %q of token %q", base, token)
		}
	}
	for c := byte('a'); c <= 'z'; c++ {
		if _, ok := Code(string(c)); !ok {
			t.Errorf("no key code for letter %q", string(c))
		}
	}
}

func TestCodeUnknownToken(t *testing.T) {
	for _, token := range []string{"", "Esc", "F1", "ü"} {
		if code, ok := Code(token); ok {
			t.Errorf("Code(%q) = %d, want unsupported", token, code)
		}
	}
}

func TestCodeNamedSpace(t *testing.T) {
	code, ok := Code("Space")
	if !ok || code != 57 {
		t.Errorf("Code(Space) = %d, %v; want 57, true", code, ok)
	}
}
