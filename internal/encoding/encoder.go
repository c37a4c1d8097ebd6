package encoding

import (
	"sort"

	"platen/internal/profile"
)

// Encoder picks code pages for single characters against one printer
// profile. It keeps a small memory of pages that have already encoded
// something successfully; the memory only ever grows and is the first
// tie-break when several pages could serve. Not safe for concurrent
// use; pair one Encoder with at most one actively writing Session.
type Encoder struct {
	prof *profile.Profile
	used map[string]struct{}
}

// NewEncoder creates an Encoder with empty memory for the given profile.
func NewEncoder(prof *profile.Profile) *Encoder {
	return &Encoder{
		prof: prof,
		used: make(map[string]struct{}),
	}
}

// Profile returns the profile this Encoder searches.
func (e *Encoder) Profile() *profile.Profile { return e.prof }

// CanEncode reports whether the named code page can represent r.
// Unknown page names report false rather than an error. CanEncode
// never touches the Encoder's memory.
func (e *Encoder) CanEncode(page string, r rune) bool {
	cp, ok := e.prof.Lookup(page)
	if !ok {
		return false
	}
	_, ok = cp.Encode(r)
	return ok
}

// Used reports whether the named page has already encoded successfully.
func (e *Encoder) Used(page string) bool {
	_, ok := e.used[page]
	return ok
}

// FindSuitable returns the name of the first profile page that can
// represent r, searching in a deliberate order: pages that have already
// worked in this Encoder's lifetime come first (reusing them avoids
// switch commands), and within each group lower device selectors win
// (low slots are the ones real hardware most reliably implements, which
// matters when a profile is optimistic). On success the winning page is
// recorded in memory before it is returned.
func (e *Encoder) FindSuitable(r rune) (string, bool) {
	pages := e.prof.Pages()
	sort.SliceStable(pages, func(i, j int) bool {
		ui, uj := e.Used(pages[i].Name), e.Used(pages[j].Name)
		if ui != uj {
			return ui
		}
		return pages[i].Selector < pages[j].Selector
	})

	for _, cp := range pages {
		if _, ok := cp.Encode(r); ok {
			e.used[cp.Name] = struct{}{}
			return cp.Name, true
		}
	}
	return "", false
}
