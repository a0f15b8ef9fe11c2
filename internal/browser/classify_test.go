package browser

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		value string
	}{
		{"https://example.com", KindAddress, "https://example.com"},
		{"http://example.com/path?x=1", KindAddress, "http://example.com/path?x=1"},
		{"https://example.com/search?q=a+b", KindAddress, "https://example.com/search?q=a+b"},
		{"example.com", KindAddress, "https://example.com"},
		{"news.ycombinator.com/item", KindAddress, "https://news.ycombinator.com/item"},
		{"127.0.0.1:8080", KindAddress, "https://127.0.0.1:8080"},
		{"  example.com  ", KindAddress, "https://example.com"},
		{"rust tutorials", KindSearch, "rust tutorials"},
		{"a.b c", KindSearch, "a.b c"},
		{"", KindSearch, ""},
		{"hello", KindSearch, "hello"},
		{"what is a monad", KindSearch, "what is a monad"},
	}

	for _, tt := range tests {
		kind, value := Classify(tt.input)
		if kind != tt.kind {
			t.Errorf("Classify(%q): expected kind %v, got %v", tt.input, tt.kind, kind)
		}
		if value != tt.value {
			t.Errorf("Classify(%q): expected %q, got %q", tt.input, tt.value, value)
		}
	}
}

func TestClassifySchemeWinsOverDotRule(t *testing.T) {
	// Rule order matters: a full URL with a query containing spaces must not
	// fall through to the search rule.
	kind, value := Classify("https://example.com/a.b")
	if kind != KindAddress || value != "https://example.com/a.b" {
		t.Errorf("Expected the parse rule to win, got kind %v value %q", kind, value)
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("www.google.com", "rust tutorials")
	want := "https://www.google.com/search?q=rust+tutorials"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := SearchURL("", "x"); got != "https://www.google.com/search?q=x" {
		t.Errorf("Expected the default engine to apply, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com", "https://example.com"},
		{"example.com", "https://example.com"},
		{"rust tutorials", "https://www.google.com/search?q=rust+tutorials"},
		{"", "https://www.google.com/search?q="},
	}

	for _, tt := range tests {
		if got := Resolve(tt.input, DefaultSearchEngine); got != tt.want {
			t.Errorf("Resolve(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}
