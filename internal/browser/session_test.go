package browser

import (
	"errors"
	"testing"
)

func TestSessionEmpty(t *testing.T) {
	s := NewSession()

	if s.CanGoBack() {
		t.Error("Expected CanGoBack to be false on an empty session")
	}
	if s.CanGoForward() {
		t.Error("Expected CanGoForward to be false on an empty session")
	}
	if _, ok := s.Back(); ok {
		t.Error("Expected Back to report no entry on an empty session")
	}
	if _, ok := s.Forward(); ok {
		t.Error("Expected Forward to report no entry on an empty session")
	}
	if _, ok := s.Current(); ok {
		t.Error("Expected Current to report no entry on an empty session")
	}
	if s.Len() != 0 {
		t.Errorf("Expected 0 entries, got %d", s.Len())
	}
}

func TestSessionNavigate(t *testing.T) {
	s := NewSession()

	u, err := s.Navigate("https://a.test")
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if u.Host != "a.test" {
		t.Errorf("Expected parsed host a.test, got %s", u.Host)
	}

	if _, err := s.Navigate("https://b.test"); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	cur, ok := s.Current()
	if !ok || cur != "https://b.test" {
		t.Errorf("Expected current https://b.test, got %q", cur)
	}
	if !s.CanGoBack() {
		t.Error("Expected CanGoBack to be true after two visits")
	}
	if s.CanGoForward() {
		t.Error("Expected CanGoForward to be false at the newest entry")
	}
}

func TestSessionBackForward(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.test")
	s.Navigate("https://b.test")

	addr, ok := s.Back()
	if !ok || addr != "https://a.test" {
		t.Errorf("Expected Back to land on https://a.test, got %q", addr)
	}
	if cur, _ := s.Current(); cur != "https://a.test" {
		t.Errorf("Expected current https://a.test after Back, got %q", cur)
	}

	addr, ok = s.Forward()
	if !ok || addr != "https://b.test" {
		t.Errorf("Expected Forward to land on https://b.test, got %q", addr)
	}
	if cur, _ := s.Current(); cur != "https://b.test" {
		t.Errorf("Expected current https://b.test after Forward, got %q", cur)
	}
}

func TestSessionInvalidAddress(t *testing.T) {
	bad := []string{
		"",
		"not a url",
		"example.com",
		"://missing-scheme",
		"http://",
		"https://",
	}

	s := NewSession()
	for _, addr := range bad {
		if _, err := s.Navigate(addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Navigate(%q): expected ErrInvalidAddress, got %v", addr, err)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Expected failed navigations to leave the session empty, got %d entries", s.Len())
	}

	s.Navigate("https://a.test")
	if _, err := s.Navigate("not a url"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatal("Expected ErrInvalidAddress")
	}
	if cur, _ := s.Current(); cur != "https://a.test" {
		t.Errorf("Expected current unchanged after failed navigation, got %q", cur)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 entry after failed navigation, got %d", s.Len())
	}
}

func TestSessionAcceptsNonHTTPSchemes(t *testing.T) {
	s := NewSession()
	if _, err := s.Navigate("data:text/html,hello"); err != nil {
		t.Errorf("Expected data: address to be accepted, got %v", err)
	}
	if _, err := s.Navigate("file:///tmp/page.html"); err != nil {
		t.Errorf("Expected file: address to be accepted, got %v", err)
	}
}

func TestSessionTruncatesForward(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.test")
	s.Navigate("https://b.test")
	s.Navigate("https://c.test")
	s.Back()
	s.Back()

	if _, err := s.Navigate("https://d.test"); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	entries, cursor := s.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries after branching, got %d", len(entries))
	}
	if entries[0] != "https://a.test" || entries[1] != "https://d.test" {
		t.Errorf("Expected entries [a.test d.test], got %v", entries)
	}
	if cursor != 1 {
		t.Errorf("Expected cursor 1, got %d", cursor)
	}
	if s.CanGoForward() {
		t.Error("Expected no forward entries after branching")
	}
}

func TestSessionWalk(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.test")
	s.Navigate("https://b.test")
	s.Navigate("https://c.test")

	if addr, _ := s.Back(); addr != "https://b.test" {
		t.Errorf("Expected https://b.test, got %q", addr)
	}
	if addr, _ := s.Back(); addr != "https://a.test" {
		t.Errorf("Expected https://a.test, got %q", addr)
	}
	if s.CanGoBack() {
		t.Error("Expected CanGoBack to be false at the oldest entry")
	}
	if addr, _ := s.Forward(); addr != "https://b.test" {
		t.Errorf("Expected https://b.test, got %q", addr)
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.test")
	s.Navigate("https://b.test")
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected 0 entries after Clear, got %d", s.Len())
	}
	if _, ok := s.Current(); ok {
		t.Error("Expected no current entry after Clear")
	}
	if s.CanGoBack() || s.CanGoForward() {
		t.Error("Expected no movement after Clear")
	}
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	s := NewSession()
	s.Navigate("https://a.test")

	entries, _ := s.Snapshot()
	entries[0] = "https://tampered.test"

	if cur, _ := s.Current(); cur != "https://a.test" {
		t.Errorf("Expected snapshot mutation to leave the session intact, got %q", cur)
	}
}
