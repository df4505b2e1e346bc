package rawterm

// Color is an 8-bit-per-channel RGB value, shaped after govte.Rgb: a small
// value type carrying only the arithmetic it needs, no palette or name
// resolution (that lives in TermInfo, not here).
type Color struct {
	R, G, B uint8
}

// SGRForeground emits ESC[38;2;R;G;Bm.
func (c Color) SGRForeground() []byte {
	return c.sgr(38)
}

// SGRBackground emits ESC[48;2;R;G;Bm.
func (c Color) SGRBackground() []byte {
	return c.sgr(48)
}

func (c Color) sgr(kind int) []byte {
	b := append([]byte(nil), CSI...)
	b = appendInt(b, kind)
	b = append(b, ';', '2', ';')
	b = appendInt(b, int(c.R))
	b = append(b, ';')
	b = appendInt(b, int(c.G))
	b = append(b, ';')
	b = appendInt(b, int(c.B))
	b = append(b, 'm')
	return b
}

// toHSV converts c to integer HSV using the standard six-region formula
// (43*region scaling to keep hue in a byte), matching the fast
// integer-only RGB<->HSV conversion common to embedded color libraries.
func (c Color) toHSV() (h, s, v uint8) {
	r, g, b := int(c.R), int(c.G), int(c.B)

	rgbMin, rgbMax := r, r
	if g < rgbMin {
		rgbMin = g
	}
	if b < rgbMin {
		rgbMin = b
	}
	if g > rgbMax {
		rgbMax = g
	}
	if b > rgbMax {
		rgbMax = b
	}

	v = uint8(rgbMax)
	if v == 0 {
		return 0, 0, 0
	}

	s = uint8(255 * (rgbMax - rgbMin) / rgbMax)
	if s == 0 {
		return 0, s, v
	}

	delta := rgbMax - rgbMin
	switch rgbMax {
	case r:
		h = uint8((43 * (g - b) / delta))
	case g:
		h = uint8(85 + 43*(b-r)/delta)
	default:
		h = uint8(171 + 43*(r-g)/delta)
	}
	return h, s, v
}

// hsvToColor converts integer HSV back to RGB via the standard six-region
// inverse of toHSV.
func hsvToColor(h, s, v uint8) Color {
	if s == 0 {
		return Color{v, v, v}
	}

	region := h / 43
	remainder := (h - region*43) * 6

	p := uint8((int(v) * int(255-s)) >> 8)
	q := uint8((int(v) * int(255-(int(s)*int(remainder))>>8)) >> 8)
	t := uint8((int(v) * int(255-(int(s)*(255-int(remainder)))>>8)) >> 8)

	switch region {
	case 0:
		return Color{v, t, p}
	case 1:
		return Color{q, v, p}
	case 2:
		return Color{p, v, t}
	case 3:
		return Color{p, q, v}
	case 4:
		return Color{t, p, v}
	default:
		return Color{v, p, q}
	}
}

func (c Color) shiftValue(towardBlack bool, amount int) Color {
	h, s, v := c.toHSV()
	nv := int(v)
	if towardBlack {
		nv -= amount
	} else {
		nv += amount
	}
	if nv < 0 {
		nv = 0
	}
	if nv > 255 {
		nv = 255
	}
	return hsvToColor(h, s, uint8(nv))
}

// Adjust shifts both fg and bg's brightness (V in HSV) in the same
// direction and returns the shifted pair. The direction is chosen from
// bg's own brightness: when delta is non-negative, colors move toward
// black if bg is already light (V >= 128) and toward white otherwise; a
// negative delta inverts that choice. The magnitude is abs(delta).
//
// Callers deriving a single color (frame_highlight_fg, empty_message_fg)
// use the first return value and discard the second.
func Adjust(fg, bg Color, delta int) (newFg, newBg Color) {
	_, _, bgV := bg.toHSV()
	towardBlack := bgV >= 128
	amount := delta
	if delta < 0 {
		towardBlack = !towardBlack
		amount = -delta
	}
	return fg.shiftValue(towardBlack, amount), bg.shiftValue(towardBlack, amount)
}
