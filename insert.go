package nrl

import (
	"unicode/utf8"

	"github.com/drepper/nrl/internal/rawterm"
)

// scrollIndicator marks column 1 of a single-line session once its
// visible window has scrolled past the start of the buffer.
var scrollIndicator = []byte("«")

// insertKey is the insertion path for a Unicode key carrying no Alt/Ctrl
// modifier. It never commits.
func insertKey(s *Session, r rune) bool {
	var enc [4]byte
	l := utf8.EncodeRune(enc[:], r)
	b := enc[:l]

	hadHint := len(s.buffer) == 0 && s.emptyMessage != ""

	if s.insertMode || s.offset == len(s.buffer) {
		s.spliceInsert(b, hadHint)
	} else {
		s.overwriteInterior(b)
	}

	s.offset += l
	s.posX++
	if s.posX == s.termCols {
		s.posX = 0
		s.posY++
		// The generic row-crossing case always gets its own explicit
		// cursor-position emit — terminals that already wrapped on their
		// own (anything but the deferred last-column case handled in
		// spliceInsertMultiline) still need this to keep pos_x/pos_y and
		// the physical cursor in agreement.
		s.moveCursorTo(s.posX, s.posY)
	}
	return false
}

func (s *Session) spliceInsert(b []byte, hadHint bool) {
	s.buffer = append(s.buffer, make([]byte, len(b))...)
	copy(s.buffer[s.offset+len(b):], s.buffer[s.offset:len(s.buffer)-len(b)])
	copy(s.buffer[s.offset:], b)
	s.nchars++

	if s.multiline {
		s.spliceInsertMultiline(b, hadHint)
	} else {
		s.spliceInsertSingleLine(b, hadHint)
	}
}

// spliceInsertMultiline handles the rewrap, the terminal's deferred
// last-column wrap quirk, and growing the visible edit area past the
// previous high-water mark of wrapped rows.
func (s *Session) spliceInsertMultiline(b []byte, hadHint bool) {
	prevMaxLines := s.maxLines
	s.recomputeFrom(s.posY)
	if len(s.lineOffset) > s.maxLines {
		s.maxLines = len(s.lineOffset)
	}

	atLastColumn := s.posX == s.termCols-1
	appendingAtEnd := s.offset+len(b) == len(s.buffer)
	rowJustClosed := len(s.lineOffset) > s.posY+1 && s.lineOffset[s.posY+1] == len(s.buffer)

	out := s.scratchBuf()
	if hadHint {
		out = append(out, rawterm.ClearToEOL...)
	}

	if atLastColumn && appendingAtEnd && rowJustClosed {
		// The terminal hasn't visually wrapped yet — it defers that until
		// the next byte is written past the last column. Reposition to
		// the last column of the row we're still logically on and write
		// the previous codepoint together with the new one, in the same
		// batch, so the terminal's own autowrap fires exactly once.
		prevStart := rawterm.PrevCodepointStart(s.buffer, s.offset)
		out = append(out, s.moveCursorToBytes(s.termCols-1, s.posY)...)
		out = append(out, s.buffer[prevStart:s.offset]...)
		out = append(out, b...)
	} else {
		out = append(out, s.buffer[s.offset:]...)
	}

	if len(s.lineOffset) > prevMaxLines {
		if s.wouldOverflowBelow() {
			out = append(out, rawterm.ScrollUp...)
			out = append(out, '\r')
			out = append(out, rawterm.InsertLine...)
		} else {
			out = append(out, '\n')
			out = append(out, rawterm.InsertLine...)
		}
	}

	s.scratch = out
	s.emit(out)
}

// wouldOverflowBelow reports whether the newly wrapped row would extend
// past the bottom of the terminal, accounting for any frame rows reserved
// below the edit area.
func (s *Session) wouldOverflowBelow() bool {
	return s.initialRow+len(s.lineOffset)-1+s.curFrameLines > s.termRows
}

// spliceInsertSingleLine handles the horizontal-scroll presentation: once
// the cursor would cross 90% of term_cols, the visible window slides
// right by ~10% of term_cols and a «-indicator replaces the prompt at
// column 1.
func (s *Session) spliceInsertSingleLine(b []byte, hadHint bool) {
	out := s.scratchBuf()
	if hadHint {
		out = append(out, rawterm.ClearToEOL...)
	}

	threshold := s.termCols * 9 / 10
	if s.posX+1 > threshold {
		shift := s.termCols / 10
		if shift < 1 {
			shift = 1
		}
		newStart, _ := rawterm.OffsetAfterNChars(s.buffer, s.lineOffset[0], shift)
		if newStart > s.offset {
			newStart = s.offset
		}
		s.lineOffset[0] = newStart
		s.posX = 1 + rawterm.CodepointCount(s.buffer[newStart:s.offset])

		tailEnd, _ := rawterm.OffsetAfterNChars(s.buffer, newStart, s.termCols-1)
		out = append(out, s.moveCursorToBytes(0, 0)...)
		out = append(out, scrollIndicator...)
		out = append(out, s.buffer[newStart:tailEnd]...)
		out = append(out, rawterm.ClearToEOL...)
		out = append(out, s.moveCursorToBytes(s.posX, s.posY)...)
	} else {
		tailEnd, _ := rawterm.OffsetAfterNChars(s.buffer, s.offset, s.termCols-s.posX)
		out = append(out, s.buffer[s.offset:tailEnd]...)
	}

	s.scratch = out
	s.emit(out)
}

// overwriteInterior replaces the codepoint at s.offset with b, resizing
// the buffer in place when the encoded lengths differ and shifting every
// later row's start by the delta. The sign conventions here don't fall
// out of a single symmetric formula — growing extends the buffer and
// shifts the tail right, shrinking shifts the tail left and then
// truncates, both before b is written — so each case is spelled out
// rather than derived from one shared expression.
func (s *Session) overwriteInterior(b []byte) {
	oldLen := rawterm.StepLen(s.buffer[s.offset])
	delta := len(b) - oldLen

	switch {
	case delta > 0:
		s.buffer = append(s.buffer, make([]byte, delta)...)
		copy(s.buffer[s.offset+oldLen+delta:], s.buffer[s.offset+oldLen:len(s.buffer)-delta])
	case delta < 0:
		copy(s.buffer[s.offset+len(b):], s.buffer[s.offset+oldLen:])
		s.buffer = s.buffer[:len(s.buffer)+delta]
	}
	copy(s.buffer[s.offset:s.offset+len(b)], b)

	if delta != 0 {
		for r := s.posY + 1; r < len(s.lineOffset); r++ {
			s.lineOffset[r] += delta
		}
	}

	s.emit(b)
}
