package nrl

import "testing"

func TestLookupActionSymbolic(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want bool
	}{
		{SymLeft, true},
		{SymRight, true},
		{SymEnter, true},
		{SymNone, false},
	}
	for _, test := range tests {
		_, ok := lookupAction(Key{Symbolic: true, Symbol: test.sym})
		if ok != test.want {
			t.Errorf("lookupAction(Symbol=%v) ok = %v, want %v", test.sym, ok, test.want)
		}
	}
}

func TestLookupActionCtrlAndAlt(t *testing.T) {
	tests := []struct {
		desc string
		k    Key
		want bool
	}{
		{"ctrl-a", Key{Rune: 'a', Mods: ModCtrl}, true},
		{"ctrl-u", Key{Rune: 'u', Mods: ModCtrl}, true},
		{"alt-b", Key{Rune: 'b', Mods: ModAlt}, true},
		{"alt-f", Key{Rune: 'f', Mods: ModAlt}, true},
		{"plain a, no binding", Key{Rune: 'a'}, false},
		{"ctrl-z, no binding", Key{Rune: 'z', Mods: ModCtrl}, false},
		{"shift ignored for alt-b lookup", Key{Rune: 'b', Mods: ModAlt | ModShift}, true},
	}
	for _, test := range tests {
		_, ok := lookupAction(test.k)
		if ok != test.want {
			t.Errorf("%s: lookupAction(%+v) ok = %v, want %v", test.desc, test.k, ok, test.want)
		}
	}
}
