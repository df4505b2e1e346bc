package nrl

// binding identifies a key by the three fields dispatch actually
// distinguishes on: whether it's a symbolic key, its modifier mask, and
// either its Symbol or its rune (only one is meaningful per binding).
type binding struct {
	symbolic bool
	mods     Modifier
	symbol   Symbol
	r        rune
}

// action is an edit handler. It returns true when the event committed the
// line (Enter), at which point process() stops feeding further events to
// this Session.
type action func(s *Session) bool

var symbolicBindings = map[binding]action{
	{symbolic: true, symbol: SymLeft}:      actionBackwardChar,
	{symbolic: true, symbol: SymRight}:     actionForwardChar,
	{symbolic: true, symbol: SymUp}:        actionPrevScreenLine,
	{symbolic: true, symbol: SymDown}:      actionNextScreenLine,
	{symbolic: true, symbol: SymHome}:      actionBeginningOfLine,
	{symbolic: true, symbol: SymEnd}:       actionEndOfLine,
	{symbolic: true, symbol: SymBackspace}: actionBackspace,
	{symbolic: true, symbol: SymDelete}:    actionDeleteChar,
	{symbolic: true, symbol: SymInsert}:    actionToggleInsert,
	{symbolic: true, symbol: SymEnter}:     actionCommit,
}

var runeBindings = map[binding]action{
	{mods: ModCtrl, r: 'a'}: actionBeginningOfLine,
	{mods: ModCtrl, r: 'e'}: actionEndOfLine,
	{mods: ModCtrl, r: 'u'}: actionKillToStart,
	{mods: ModCtrl, r: 'k'}: actionKillToEnd,
	{mods: ModAlt, r: 'b'}:  actionBackwardWord,
	{mods: ModAlt, r: 'f'}:  actionForwardWord,
}

// lookupAction finds the edit handler bound to k in the dispatch table.
// Ctrl-C and Ctrl-D-on-an-empty-buffer are not bindings here: both
// are cancellation conditions process() recognizes before consulting
// dispatch at all. A plain printable rune (no binding, not a control
// character) falls through to the insertion path, also handled by the
// caller rather than via this table.
func lookupAction(k Key) (action, bool) {
	if k.Symbolic {
		a, ok := symbolicBindings[binding{symbolic: true, symbol: k.Symbol}]
		return a, ok
	}
	a, ok := runeBindings[binding{mods: k.Mods & (ModAlt | ModCtrl), r: k.Rune}]
	return a, ok
}
