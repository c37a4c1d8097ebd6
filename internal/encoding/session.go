package encoding

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"platen/internal/escpos"
	"platen/internal/profile"
)

var (
	// ErrPinnedEncoding is returned when a session is constructed
	// pinned without naming the page to pin to.
	ErrPinnedEncoding = errors.New("pinned session requires an initial encoding")

	// ErrInvalidText is returned when Write receives a string that is
	// not valid UTF-8, which almost always means raw device bytes were
	// passed where text was expected.
	ErrInvalidText = errors.New("text must be valid UTF-8")

	// ErrFallback is returned when the configured fallback character is
	// itself unencodable by every page in the profile. Emitting nothing
	// silently would hide the misconfiguration, so the write fails.
	ErrFallback = errors.New("fallback character not encodable by any profile code page")
)

// DefaultFallback is the substitute character used when no code page in
// the profile can represent a character and no other fallback was
// configured.
const DefaultFallback = '?'

// Options configures a Session.
type Options struct {
	// Initial names the code page the printer is known to have active.
	// When set, the first write in that page emits no switch command.
	// Must resolve against the profile.
	Initial string
	// Pin starts the session pinned to Initial, disabling automatic
	// code page selection. Requires Initial.
	Pin bool
	// Fallback is the substitute character for globally unencodable
	// input. Defaults to DefaultFallback.
	Fallback rune
	// Encoder optionally injects a shared Encoder so several
	// consecutive sessions reuse its code page memory. When nil the
	// session gets a fresh Encoder.
	Encoder *Encoder
}

// Session streams text to a byte sink, switching the printer's active
// code page as the script of the text demands. It tracks the page the
// device has active so consecutive characters in the same page cost no
// extra commands. Sessions are cheap; create one per print job.
type Session struct {
	sink     io.Writer
	enc      *Encoder
	current  string // tracked active page; empty until first switch or Initial
	fallback rune
	pinned   bool
	fixed    string
}

// NewSession creates a write session over sink for the given profile.
func NewSession(sink io.Writer, prof *profile.Profile, opts Options) (*Session, error) {
	enc := opts.Encoder
	if enc == nil {
		enc = NewEncoder(prof)
	}

	fallback := opts.Fallback
	if fallback == 0 {
		fallback = DefaultFallback
	}

	s := &Session{
		sink:     sink,
		enc:      enc,
		fallback: fallback,
	}

	if opts.Initial != "" {
		canon, err := enc.Profile().Resolve(opts.Initial)
		if err != nil {
			return nil, err
		}
		// The caller vouches for the device state; no switch is emitted.
		s.current = canon
	}

	if opts.Pin {
		if s.current == "" {
			return nil, ErrPinnedEncoding
		}
		s.pinned = true
		s.fixed = s.current
	}

	return s, nil
}

// Current returns the code page the session believes is active on the
// device, or the empty string when it is still unknown.
func (s *Session) Current() string { return s.current }

// Pinned reports whether automatic code page selection is disabled.
func (s *Session) Pinned() bool { return s.pinned }

// Pin fixes the session to one code page and emits the switch command
// right away; automatic selection stops until Pin("") restores it.
// An empty name resumes automatic mode without emitting anything.
func (s *Session) Pin(name string) error {
	if name == "" {
		s.pinned = false
		s.fixed = ""
		return nil
	}
	canon, err := s.enc.Profile().Resolve(name)
	if err != nil {
		return err
	}
	if err := s.emit(canon, ""); err != nil {
		return err
	}
	s.pinned = true
	s.fixed = canon
	return nil
}

// Write streams text to the sink. In automatic mode each character is
// encoded in the tracked current page when possible, otherwise in the
// best page the Encoder can find, otherwise as the fallback character.
// In pinned mode the whole text is encoded in the pinned page with
// page-level replacement. Bytes written before an error stay written;
// there is no rollback.
func (s *Session) Write(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w (got %d raw bytes)", ErrInvalidText, len(text))
	}
	if s.pinned {
		return s.emit(s.fixed, text)
	}
	for _, r := range text {
		if err := s.writeRune(r, true); err != nil {
			return err
		}
	}
	return nil
}

// writeRune routes one character. substitute guards the fallback
// substitution so an unencodable fallback character fails instead of
// recursing forever.
func (s *Session) writeRune(r rune, substitute bool) error {
	if s.current != "" && s.enc.CanEncode(s.current, r) {
		return s.emit(s.current, string(r))
	}
	if page, ok := s.enc.FindSuitable(r); ok {
		return s.emit(page, string(r))
	}
	if !substitute {
		return fmt.Errorf("%w: %q", ErrFallback, r)
	}
	return s.writeRune(s.fallback, false)
}

// emit is the only path that touches the sink. When page differs from
// the tracked current page it writes the ESC t switch command first, so
// the tracked page always matches the most recent switch on the wire.
// Characters text contains that this specific page cannot encode are
// replaced with the page replacement byte.
func (s *Session) emit(page, text string) error {
	cp, ok := s.enc.Profile().Lookup(page)
	if !ok {
		return &profile.UnsupportedEncodingError{
			Name:    page,
			Profile: s.enc.Profile().Name(),
			Valid:   s.enc.Profile().Names(),
		}
	}
	if page != s.current {
		if _, err := s.sink.Write(escpos.SelectCodePage(cp.Selector)); err != nil {
			return fmt.Errorf("write code page switch: %w", err)
		}
		s.current = page
	}
	if text == "" {
		return nil
	}
	if _, err := s.sink.Write(cp.EncodeReplace(text)); err != nil {
		return fmt.Errorf("write encoded text: %w", err)
	}
	return nil
}
