package rawterm

import "testing"

func TestStepLen(t *testing.T) {
	tests := []struct {
		b    byte
		want int
	}{
		{'a', 1},
		{0x7f, 1},
		{0xC3, 2}, // lead byte of 'é'
		{0xE2, 3}, // lead byte of a 3-byte codepoint
		{0xF0, 4}, // lead byte of a 4-byte codepoint
	}
	for _, test := range tests {
		if got := StepLen(test.b); got != test.want {
			t.Errorf("StepLen(%#x) = %d, want %d", test.b, got, test.want)
		}
	}
}

func TestStepLenPanicsOnContinuationByte(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("StepLen on a continuation byte should panic")
		}
	}()
	StepLen(0x80)
}

func TestVisibleLenIgnoringCSI(t *testing.T) {
	tests := []struct {
		desc string
		in   string
		want int
	}{
		{"plain ascii", "hello", 5},
		{"utf8", "café", 4},
		{"one sgr sequence", "\x1b[38;2;1;2;3mhi", 2},
		{"sgr reset only", "\x1b[0m", 0},
		{"sgr before and after", "\x1b[1mhi\x1b[0m", 2},
		{"lone unterminated ESC", "\x1b", 0},
	}
	for _, test := range tests {
		if got := VisibleLenIgnoringCSI(test.in); got != test.want {
			t.Errorf("%s: VisibleLenIgnoringCSI(%q) = %d, want %d", test.desc, test.in, got, test.want)
		}
	}
}

func TestVisibleLenIgnoringCSIMatchesCodepointCountWithoutEscapes(t *testing.T) {
	// Without any escape sequences, visible length is just codepoint count.
	for _, s := range []string{"", "a", "hello, world", "café", "日本語"} {
		got := VisibleLenIgnoringCSI(s)
		want := CodepointCount([]byte(s))
		if got != want {
			t.Errorf("VisibleLenIgnoringCSI(%q) = %d, want CodepointCount = %d", s, got, want)
		}
	}
}

func TestOffsetAfterNChars(t *testing.T) {
	buf := []byte("café!")
	tests := []struct {
		start, n       int
		wantOff, wantN int
	}{
		{0, 0, 0, 0},
		{0, 3, 3, 3},  // "caf"
		{0, 4, 5, 4},  // "café" — é is 2 bytes
		{0, 100, 6, 5}, // clamps at len(buf)
	}
	for _, test := range tests {
		off, n := OffsetAfterNChars(buf, test.start, test.n)
		if off != test.wantOff || n != test.wantN {
			t.Errorf("OffsetAfterNChars(%q,%d,%d) = (%d,%d), want (%d,%d)",
				buf, test.start, test.n, off, n, test.wantOff, test.wantN)
		}
	}
}

func TestPrevCodepointStart(t *testing.T) {
	buf := []byte("café")
	if got := PrevCodepointStart(buf, len(buf)); got != 3 {
		t.Errorf("PrevCodepointStart(%q, %d) = %d, want 3 (start of é)", buf, len(buf), got)
	}
	if got := PrevCodepointStart(buf, 3); got != 2 {
		t.Errorf("PrevCodepointStart(%q, 3) = %d, want 2", buf, got)
	}
}

func TestCodepointCount(t *testing.T) {
	if got := CodepointCount([]byte("café")); got != 4 {
		t.Errorf("CodepointCount(%q) = %d, want 4", "café", got)
	}
}
