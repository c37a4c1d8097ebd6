// Package encoding decides which printer code page renders each character
// of a text stream and emits the switch commands between runs.
//
// ESC/POS printers render text through a single active single-byte code
// page; printing multi-script text means interleaving ESC t switch
// commands with encoded bytes. The Encoder searches the printer's profile
// for a page that can represent a character, remembering pages that have
// already worked so later characters prefer them and switches stay rare.
// The Session is the per-job state machine on top: it tracks the page the
// device currently has active, writes switch commands only when the
// target page actually changes, and substitutes a configurable fallback
// character when no page in the profile can help.
//
// One Encoder is meant to live as long as its driver and may be shared
// across consecutive Sessions to carry its memory over; neither type is
// safe for concurrent use.
package encoding
