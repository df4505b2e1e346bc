package rawterm

import "testing"

func TestHSVRoundTrip(t *testing.T) {
	colors := []Color{
		{0, 0, 0},
		{255, 255, 255},
		{128, 128, 128},
		{200, 50, 50},
		{10, 200, 10},
		{10, 10, 200},
		{16, 16, 16},
	}
	for _, c := range colors {
		h, s, v := c.toHSV()
		got := hsvToColor(h, s, v)
		// The six-region integer formula isn't exactly lossless; each
		// channel should land within a couple of units of the original.
		if absDiff(got.R, c.R) > 2 || absDiff(got.G, c.G) > 2 || absDiff(got.B, c.B) > 2 {
			t.Errorf("round trip %+v -> hsv(%d,%d,%d) -> %+v, want close to original", c, h, s, v, got)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestAdjustDarkBackgroundBrightens(t *testing.T) {
	fg := Color{200, 200, 200}
	bg := Color{10, 10, 10} // dark background: V < 128
	newFg, newBg := Adjust(fg, bg, 16)

	_, _, oldBgV := bg.toHSV()
	_, _, newBgV := newBg.toHSV()
	if newBgV <= oldBgV {
		t.Errorf("Adjust on a dark background with positive delta should brighten bg: old V=%d new V=%d", oldBgV, newBgV)
	}
	_, _, oldFgV := fg.toHSV()
	_, _, newFgV := newFg.toHSV()
	if newFgV <= oldFgV {
		t.Errorf("Adjust on a dark background with positive delta should brighten fg: old V=%d new V=%d", oldFgV, newFgV)
	}
}

func TestAdjustLightBackgroundDarkens(t *testing.T) {
	fg := Color{50, 50, 50}
	bg := Color{230, 230, 230} // light background: V >= 128
	newFg, newBg := Adjust(fg, bg, 16)

	_, _, oldBgV := bg.toHSV()
	_, _, newBgV := newBg.toHSV()
	if newBgV >= oldBgV {
		t.Errorf("Adjust on a light background with positive delta should darken bg: old V=%d new V=%d", oldBgV, newBgV)
	}
	_ = newFg
}

func TestAdjustNegativeDeltaInvertsDirection(t *testing.T) {
	bg := Color{10, 10, 10}
	_, posBg := Adjust(Color{}, bg, 16)
	_, negBg := Adjust(Color{}, bg, -16)

	_, _, base := bg.toHSV()
	_, _, pos := posBg.toHSV()
	_, _, neg := negBg.toHSV()
	if pos <= base {
		t.Fatalf("positive delta should brighten a dark bg: base=%d pos=%d", base, pos)
	}
	if neg >= base {
		t.Fatalf("negative delta should invert direction and darken further: base=%d neg=%d", base, neg)
	}
}

func TestSGRForegroundBackground(t *testing.T) {
	c := Color{1, 2, 3}
	if got, want := string(c.SGRForeground()), "\x1b[38;2;1;2;3m"; got != want {
		t.Errorf("SGRForeground() = %q, want %q", got, want)
	}
	if got, want := string(c.SGRBackground()), "\x1b[48;2;1;2;3m"; got != want {
		t.Errorf("SGRBackground() = %q, want %q", got, want)
	}
}
