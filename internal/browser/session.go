package browser

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidAddress is returned by Session.Navigate for input that does not
// parse as an absolute URL.
var ErrInvalidAddress = errors.New("invalid address")

// Session tracks the addresses visited by a single content view and a cursor
// into them. It takes no locks; the shell owns it and calls it only from the
// update loop.
type Session struct {
	entries []string
	cursor  int // index of the current entry, -1 while empty
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		entries: nil,
		cursor:  -1,
	}
}

// Navigate records a visit to address and returns the parsed URL. The address
// must be absolute; anything else fails with ErrInvalidAddress and leaves the
// session untouched. Navigating from a mid-history position discards the
// forward entries.
func (s *Session) Navigate(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidAddress, address)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidAddress, address)
	}
	if s.cursor < len(s.entries)-1 {
		s.entries = s.entries[:s.cursor+1]
	}
	s.entries = append(s.entries, address)
	s.cursor = len(s.entries) - 1
	return u, nil
}

// Back moves one step back. Returns the new current address and true if possible.
func (s *Session) Back() (string, bool) {
	if s.cursor <= 0 {
		return "", false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Forward moves one step forward. Returns the new current address and true if possible.
func (s *Session) Forward() (string, bool) {
	if s.cursor >= len(s.entries)-1 {
		return "", false
	}
	s.cursor++
	return s.entries[s.cursor], true
}

// Current returns the address under the cursor, or false before the first
// successful Navigate.
func (s *Session) Current() (string, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return "", false
	}
	return s.entries[s.cursor], true
}

// CanGoBack reports whether there is a previous entry.
func (s *Session) CanGoBack() bool {
	return s.cursor > 0
}

// CanGoForward reports whether there is a next entry.
func (s *Session) CanGoForward() bool {
	return s.cursor < len(s.entries)-1
}

// Len returns the total number of entries.
func (s *Session) Len() int {
	return len(s.entries)
}

// Clear resets the session.
func (s *Session) Clear() {
	s.entries = nil
	s.cursor = -1
}

// Snapshot returns a copy of the visited addresses and the cursor index.
func (s *Session) Snapshot() ([]string, int) {
	entries := make([]string, len(s.entries))
	copy(entries, s.entries)
	return entries, s.cursor
}
