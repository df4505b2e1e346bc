package nrl

import (
	"unicode"
	"unicode/utf8"

	"github.com/drepper/nrl/internal/rawterm"
)

// isWordRune classifies a codepoint as part of a "word" for the backward/
// forward-word motions: any letter or number.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func actionCommit(s *Session) bool { return true }

// --- cursor motion -------------------------------------------------------

// actionBeginningOfLine moves to offset 0, row 0, the column right after
// the prompt (Ctrl-A / Home).
func actionBeginningOfLine(s *Session) bool {
	s.offset = 0
	s.posY = 0
	s.posX = s.promptLen
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

func actionEndOfLine(s *Session) bool {
	lastRow := len(s.lineOffset) - 1
	s.offset = len(s.buffer)
	s.posY = lastRow
	s.posX = s.rowStartWidth(lastRow, s.offset)
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

func actionBackwardChar(s *Session) bool {
	if s.offset == 0 {
		return false
	}
	prev := rawterm.PrevCodepointStart(s.buffer, s.offset)
	crossedRow := s.multiline && prev < s.lineOffset[s.posY]
	s.offset = prev
	if crossedRow {
		s.posY--
		s.posX = s.termCols - 1
	} else {
		s.posX--
	}
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

func actionForwardChar(s *Session) bool {
	if s.offset == len(s.buffer) {
		return false
	}
	next := s.offset + rawterm.StepLen(s.buffer[s.offset])
	crossedRow := s.multiline && s.posY+1 < len(s.lineOffset) && next >= s.lineOffset[s.posY+1]
	s.offset = next
	if crossedRow {
		s.posY++
		s.posX = 0
	} else {
		s.posX++
	}
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

// actionPrevScreenLine and actionNextScreenLine move by one visual row,
// holding the sticky column target s.requestedPosX (up/down never update
// it). Landing on row 0 needs a target of at least prompt_len: if the
// sticky target is below prompt_len the upward motion is refused
// outright rather than clamped, since there's no buffer column to land on
// to the left of the prompt.
func actionPrevScreenLine(s *Session) bool {
	if s.posY == 0 {
		return false
	}
	targetRow := s.posY - 1
	target := s.requestedPosX
	if targetRow == 0 {
		if target < s.promptLen {
			return false
		}
		newOffset, consumed := rawterm.OffsetAfterNChars(s.buffer, s.lineOffset[0], target-s.promptLen)
		s.offset = newOffset
		s.posY = 0
		s.posX = s.promptLen + consumed
	} else {
		newOffset, consumed := rawterm.OffsetAfterNChars(s.buffer, s.lineOffset[targetRow], target)
		s.offset = newOffset
		s.posY = targetRow
		s.posX = consumed
	}
	s.moveCursorTo(s.posX, s.posY)
	return false
}

func actionNextScreenLine(s *Session) bool {
	if s.posY+1 >= len(s.lineOffset) {
		return false
	}
	targetRow := s.posY + 1
	target := s.requestedPosX
	newOffset, consumed := rawterm.OffsetAfterNChars(s.buffer, s.lineOffset[targetRow], target)
	s.offset = newOffset
	s.posY = targetRow
	s.posX = consumed
	s.moveCursorTo(s.posX, s.posY)
	return false
}

// actionBackwardWord and actionForwardWord scan codepoint-by-codepoint for
// a word/non-word transition. Each keeps the "already stepped over"
// classification in a variable distinct from the one just decoded, rather
// than reusing a single lookahead variable for both — the naive one-
// variable version misclassifies the last word in the buffer, stopping one
// codepoint short of the boundary.
func actionBackwardWord(s *Session) bool {
	off := s.offset
	afterIsWord := false
	for off > 0 {
		prevStart := rawterm.PrevCodepointStart(s.buffer, off)
		cur, _ := utf8.DecodeRune(s.buffer[prevStart:off])
		curIsWord := isWordRune(cur)
		if afterIsWord && !curIsWord {
			break
		}
		afterIsWord = curIsWord
		off = prevStart
	}
	s.offset = off
	s.syncCursorFromOffset()
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

func actionForwardWord(s *Session) bool {
	off := s.offset
	n := len(s.buffer)
	prevIsWord := false
	if off > 0 {
		r, _ := utf8.DecodeLastRune(s.buffer[:off])
		prevIsWord = isWordRune(r)
	}
	for off < n {
		cur, size := utf8.DecodeRune(s.buffer[off:])
		if prevIsWord && !isWordRune(cur) {
			break
		}
		prevIsWord = isWordRune(cur)
		off += size
	}
	s.offset = off
	s.syncCursorFromOffset()
	s.requestedPosX = s.posX
	s.moveCursorTo(s.posX, s.posY)
	return false
}

// --- deletion --------------------------------------------------------------

// redrawTail rewrites the buffer from the current offset onward, pads with
// `padding` spaces to erase leftover columns from shrunk content, then
// returns the cursor to (pos_x, pos_y) — all as one batched write.
func (s *Session) redrawTail(padding int) {
	b := append(s.scratchBuf(), s.buffer[s.offset:]...)
	for i := 0; i < padding; i++ {
		b = append(b, ' ')
	}
	b = append(b, s.moveCursorToBytes(s.posX, s.posY)...)
	s.scratch = b
	s.emit(b)
}

func actionBackspace(s *Session) bool {
	if s.offset == 0 {
		return false
	}
	prev := rawterm.PrevCodepointStart(s.buffer, s.offset)
	crossedRow := s.multiline && prev < s.lineOffset[s.posY]
	s.buffer = append(s.buffer[:prev], s.buffer[s.offset:]...)
	s.offset = prev
	s.nchars--
	if crossedRow {
		s.posY--
		s.posX = s.termCols - 1
	} else {
		s.posX--
	}
	s.requestedPosX = s.posX
	s.recomputeFrom(s.posY)
	s.redrawTail(1)
	return false
}

func actionDeleteChar(s *Session) bool {
	if s.offset == len(s.buffer) {
		return false
	}
	l := rawterm.StepLen(s.buffer[s.offset])
	s.buffer = append(s.buffer[:s.offset], s.buffer[s.offset+l:]...)
	s.nchars--
	s.recomputeFrom(s.posY)
	s.redrawTail(1)
	return false
}

// actionKillToStart (Ctrl-U) discards [0, offset) and redraws from the
// prompt column on row 0, emitting a clear-to-end-of-line for any row the
// edit shrinks out of existence.
func actionKillToStart(s *Session) bool {
	oldRows := len(s.lineOffset) - 1
	s.buffer = append([]byte(nil), s.buffer[s.offset:]...)
	s.nchars = rawterm.CodepointCount(s.buffer)
	s.offset = 0
	s.posX = s.promptLen
	s.posY = 0
	s.requestedPosX = s.posX
	s.lineOffset = []int{0}
	s.recomputeFrom(0)
	newRows := len(s.lineOffset) - 1

	b := append(s.scratchBuf(), s.moveCursorToBytes(s.promptLen, 0)...)
	b = append(b, s.buffer...)
	b = append(b, rawterm.ClearToEOL...)
	for i := 0; i < oldRows-newRows; i++ {
		b = append(b, '\n')
		b = append(b, rawterm.ClearToEOL...)
	}
	b = append(b, s.moveCursorToBytes(s.posX, s.posY)...)
	s.scratch = b
	s.emit(b)
	return false
}

// actionKillToEnd (Ctrl-K) discards [offset, len(buffer)) without moving
// the cursor.
func actionKillToEnd(s *Session) bool {
	oldRows := len(s.lineOffset) - 1
	s.buffer = s.buffer[:s.offset]
	s.nchars = rawterm.CodepointCount(s.buffer)
	s.recomputeFrom(s.posY)
	newRows := len(s.lineOffset) - 1

	b := append(s.scratchBuf(), rawterm.ClearToEOL...)
	for i := 0; i < oldRows-newRows; i++ {
		b = append(b, '\n')
		b = append(b, rawterm.ClearToEOL...)
	}
	b = append(b, s.moveCursorToBytes(s.posX, s.posY)...)
	s.scratch = b
	s.emit(b)
	return false
}

func actionToggleInsert(s *Session) bool {
	s.insertMode = !s.insertMode
	return false
}
