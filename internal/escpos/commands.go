package escpos

const (
	esc = 0x1B
	gs  = 0x1D
)

// Initialize resets the printer to its power-on state (ESC @).
var Initialize = []byte{esc, '@'}

// LineFeed advances the paper one line.
var LineFeed = []byte{'\n'}

// codePageChange is the two-byte prefix of the code page selection
// command. The full command is ESC t n, where n is the device selector
// of the target code page.
var codePageChange = []byte{esc, 't'}

// SelectCodePage returns the command that activates the code page with
// the given device selector (ESC t n).
func SelectCodePage(selector byte) []byte {
	return append(append([]byte(nil), codePageChange...), selector)
}

// Cut returns the paper cut command (GS V m). A full cut severs the
// paper completely; a partial cut leaves a small bridge.
func Cut(partial bool) []byte {
	m := byte(0)
	if partial {
		m = 1
	}
	return []byte{gs, 'V', m}
}

// Feed returns the command to feed n lines (ESC d n).
func Feed(lines byte) []byte {
	return []byte{esc, 'd', lines}
}
