package keydecoder

import (
	"testing"

	"github.com/drepper/nrl"
)

var decodeTests = []struct {
	desc   string
	chunks []string
	want   []nrl.Key
}{
	{
		desc:   "ascii",
		chunks: []string{"abc"},
		want: []nrl.Key{
			{Rune: 'a'},
			{Rune: 'b'},
			{Rune: 'c'},
		},
	},
	{
		desc:   "utf8",
		chunks: []string{"café"},
		want: []nrl.Key{
			{Rune: 'c'},
			{Rune: 'a'},
			{Rune: 'f'},
			{Rune: 'é'},
		},
	},
	{
		desc:   "utf8 split across feeds",
		chunks: []string{"\xc3", "\xa9"},
		want:   []nrl.Key{{Rune: 'é'}},
	},
	{
		desc:   "enter cr",
		chunks: []string{"\r"},
		want:   []nrl.Key{{Symbolic: true, Symbol: nrl.SymEnter}},
	},
	{
		desc:   "enter lf",
		chunks: []string{"\n"},
		want:   []nrl.Key{{Symbolic: true, Symbol: nrl.SymEnter}},
	},
	{
		desc:   "backspace del",
		chunks: []string{"\x7f"},
		want:   []nrl.Key{{Symbolic: true, Symbol: nrl.SymBackspace}},
	},
	{
		desc:   "ctrl a",
		chunks: []string{"\x01"},
		want:   []nrl.Key{{Rune: 'a', Mods: nrl.ModCtrl}},
	},
	{
		desc:   "ctrl u",
		chunks: []string{"\x15"},
		want:   []nrl.Key{{Rune: 'u', Mods: nrl.ModCtrl}},
	},
	{
		desc:   "alt b",
		chunks: []string{"\x1bb"},
		want:   []nrl.Key{{Rune: 'b', Mods: nrl.ModAlt}},
	},
	{
		desc:   "alt f",
		chunks: []string{"\x1bf"},
		want:   []nrl.Key{{Rune: 'f', Mods: nrl.ModAlt}},
	},
	{
		desc:   "arrow left",
		chunks: []string{"\x1b[D"},
		want:   []nrl.Key{{Symbolic: true, Symbol: nrl.SymLeft}},
	},
	{
		desc:   "arrow up/down/right",
		chunks: []string{"\x1b[A\x1b[B\x1b[C"},
		want: []nrl.Key{
			{Symbolic: true, Symbol: nrl.SymUp},
			{Symbolic: true, Symbol: nrl.SymDown},
			{Symbolic: true, Symbol: nrl.SymRight},
		},
	},
	{
		desc:   "home end via CSI letter",
		chunks: []string{"\x1b[H\x1b[F"},
		want: []nrl.Key{
			{Symbolic: true, Symbol: nrl.SymHome},
			{Symbolic: true, Symbol: nrl.SymEnd},
		},
	},
	{
		desc:   "home end via SS3",
		chunks: []string{"\x1bOH\x1bOF"},
		want: []nrl.Key{
			{Symbolic: true, Symbol: nrl.SymHome},
			{Symbolic: true, Symbol: nrl.SymEnd},
		},
	},
	{
		desc:   "insert delete via tilde",
		chunks: []string{"\x1b[2~\x1b[3~"},
		want: []nrl.Key{
			{Symbolic: true, Symbol: nrl.SymInsert},
			{Symbolic: true, Symbol: nrl.SymDelete},
		},
	},
	{
		desc:   "escape sequence split across feeds",
		chunks: []string{"\x1b", "[", "D"},
		want:   []nrl.Key{{Symbolic: true, Symbol: nrl.SymLeft}},
	},
	{
		desc:   "plain key after arrow",
		chunks: []string{"\x1b[Dx"},
		want: []nrl.Key{
			{Symbolic: true, Symbol: nrl.SymLeft},
			{Rune: 'x'},
		},
	},
	{
		desc:   "unrecognized CSI letter is dropped, stream resyncs",
		chunks: []string{"\x1b[Zx"},
		want:   []nrl.Key{{Rune: 'x'}},
	},
	{
		desc:   "stray continuation byte is dropped, stream resyncs",
		chunks: []string{"\x80x"},
		want:   []nrl.Key{{Rune: 'x'}},
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		d := New()
		var got []nrl.Key
		for _, chunk := range test.chunks {
			d.Feed([]byte(chunk))
		}
		for {
			k, ok := d.TryNext()
			if !ok {
				break
			}
			got = append(got, k)
		}
		if len(got) != len(test.want) {
			t.Errorf("%s: got %d keys %v, want %d %v", test.desc, len(got), got, len(test.want), test.want)
			continue
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%s: key %d = %+v, want %+v", test.desc, i, got[i], test.want[i])
			}
		}
	}
}

func TestDecodeIncompleteEscapeWaits(t *testing.T) {
	d := New()
	d.Feed([]byte("\x1b"))
	if _, ok := d.TryNext(); ok {
		t.Fatalf("lone ESC should not resolve without more bytes or PullTimeout")
	}
	d.Feed([]byte("[D"))
	k, ok := d.TryNext()
	if !ok || k.Symbol != nrl.SymLeft {
		t.Fatalf("expected SymLeft after completing the sequence, got %+v ok=%v", k, ok)
	}
}
