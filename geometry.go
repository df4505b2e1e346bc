package nrl

import "github.com/drepper/nrl/internal/rawterm"

// recomputeFrom rebuilds s.lineOffset from row r onward. It truncates
// lineOffset to length r+1 first, then repeatedly consumes a row's worth
// of codepoints from the buffer; a row that fills exactly to term_cols
// gets a break appended immediately (the cursor logically lands at
// column 0 of the next row, even with nothing typed there yet), and the
// loop stops the first time a row falls short of term_cols, since that
// row is necessarily the last one.
func (s *Session) recomputeFrom(r int) {
	s.lineOffset = s.lineOffset[:r+1]

	if !s.multiline {
		// Single-line mode has no wrap breaks to rebuild — lineOffset[0]
		// is the horizontal-scroll origin, not row 0 of a wrapped layout.
		return
	}

	avail := s.termCols
	if r == 0 {
		avail -= s.promptLen
	}

	o := s.lineOffset[r]
	for {
		newOffset, consumed := rawterm.OffsetAfterNChars(s.buffer, o, avail)
		if consumed < avail {
			return
		}
		s.lineOffset = append(s.lineOffset, newOffset)
		o = newOffset
		avail = s.termCols
	}
}

// rowStartWidth returns the visible width from the start of row to off,
// including the prompt if row is 0 — used to recompute pos_x after a
// motion that changes pos_y.
func (s *Session) rowStartWidth(row, off int) int {
	width := rawterm.CodepointCount(s.buffer[s.lineOffset[row]:off])
	if row == 0 {
		width += s.promptLen
	}
	return width
}

// rowFor returns the row r such that line_offset[r] <= off < line_offset[r+1]
// (or the last row if off is on or after the final break), satisfying
// invariant 5.
func (s *Session) rowFor(off int) int {
	for r := len(s.lineOffset) - 1; r >= 0; r-- {
		if s.lineOffset[r] <= off {
			return r
		}
	}
	return 0
}

// rowCodepoints returns the number of codepoints on row r.
func (s *Session) rowCodepoints(row int) int {
	start := s.lineOffset[row]
	end := len(s.buffer)
	if row+1 < len(s.lineOffset) {
		end = s.lineOffset[row+1]
	}
	return rawterm.CodepointCount(s.buffer[start:end])
}

// syncCursorFromOffset recomputes both pos_y and pos_x from s.offset,
// maintaining invariants 5 and 6. The word motions use it after moving
// s.offset; any pos_y set beforehand is overwritten.
func (s *Session) syncCursorFromOffset() {
	s.posY = s.rowFor(s.offset)
	s.posX = s.rowStartWidth(s.posY, s.offset)
}
