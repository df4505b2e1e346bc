package rawterm

import "unicode/utf8"

// Frame glyphs: a plain horizontal rule for line-mode decoration, and
// upper/lower half-blocks for background-mode decoration (the top frame
// row uses the upper half, the bottom row the lower half, so the colored
// band reads as sitting just outside the edit area).
const (
	GlyphLine      = '─' // ─
	GlyphUpperHalf = '▀' // ▀
	GlyphLowerHalf = '▄' // ▄
)

// LineFrameRow returns width copies of the line-mode rule glyph, with no
// color applied (line-mode frames are undecorated).
func LineFrameRow(width int) []byte {
	b := make([]byte, 0, width*3)
	for i := 0; i < width; i++ {
		b = appendRune(b, GlyphLine)
	}
	return b
}

// BackgroundFrameRow returns a colored band of half-block glyphs: upper
// for the row above the edit area, lower for the row below, bracketed by
// the given fg/bg SGR and a trailing reset.
func BackgroundFrameRow(width int, upper bool, fg, bg Color) []byte {
	glyph := GlyphLowerHalf
	if upper {
		glyph = GlyphUpperHalf
	}
	b := append([]byte(nil), fg.SGRForeground()...)
	b = append(b, bg.SGRBackground()...)
	for i := 0; i < width; i++ {
		b = appendRune(b, glyph)
	}
	b = append(b, SGRReset...)
	return b
}

// CursorUpLines emits ESC[<n>F (cursor to column 1 of the nth previous
// row), used to hop back up to the edit row between the two frame rows
// after drawing the bottom one without needing an absolute position.
func CursorUpLines(n int) []byte {
	b := append([]byte(nil), CSI...)
	b = appendInt(b, n)
	b = append(b, 'F')
	return b
}

func appendRune(b []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(b, buf[:n]...)
}
