package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/dinghy-browser/dinghy/internal/assist"
)

func TestRenderHistoryEmpty(t *testing.T) {
	content, links := renderHistory(nil, -1)
	if !strings.Contains(content, "Nothing visited yet") {
		t.Error("Expected empty-history hint in content")
	}
	if links != nil {
		t.Errorf("Expected no links, got %d", len(links))
	}
}

func TestRenderHistory(t *testing.T) {
	entries := []string{
		"https://a.example/",
		"https://b.example/",
		"https://c.example/",
	}
	content, links := renderHistory(entries, 1)

	for _, url := range entries {
		if !strings.Contains(content, url) {
			t.Errorf("Expected content to contain %q", url)
		}
	}
	if !strings.Contains(content, "➤") {
		t.Error("Expected current-entry marker in content")
	}
	if !strings.Contains(content, "3 entries") {
		t.Error("Expected entry count in content")
	}

	if len(links) != 3 {
		t.Fatalf("Expected 3 links, got %d", len(links))
	}
	for i, link := range links {
		if link.Index != i+1 {
			t.Errorf("Expected link index %d, got %d", i+1, link.Index)
		}
		if link.URL != entries[i] {
			t.Errorf("Expected link URL %q, got %q", entries[i], link.URL)
		}
	}
}

func TestRenderSuggestion(t *testing.T) {
	sug := &assist.Suggestion{
		Text:        "Open the pricing page",
		Explanation: "The page mentions a free tier.",
	}
	content := renderSuggestion("where do I sign up?", sug, 80)

	if !strings.Contains(content, "where do I sign up?") {
		t.Error("Expected prompt in content")
	}
	if !strings.Contains(content, "Open the pricing page") {
		t.Error("Expected suggestion text in content")
	}
	if !strings.Contains(content, "The page mentions a free tier.") {
		t.Error("Expected explanation in content")
	}
}

func TestRenderSuggestionNoExplanation(t *testing.T) {
	sug := &assist.Suggestion{Text: "AI suggestion feature coming soon"}
	content := renderSuggestion("", sug, 80)

	if !strings.Contains(content, "AI suggestion feature coming soon") {
		t.Error("Expected suggestion text in content")
	}
	if strings.Contains(content, "Details") {
		t.Error("Did not expect details section without an explanation")
	}
}

func TestErrorPage(t *testing.T) {
	content := errorPage("https://broken.example/", errors.New("connection refused"))

	if !strings.Contains(content, "Failed to load page") {
		t.Error("Expected failure heading in content")
	}
	if !strings.Contains(content, "https://broken.example/") {
		t.Error("Expected URL in content")
	}
	if !strings.Contains(content, "connection refused") {
		t.Error("Expected error detail in content")
	}
}

func TestRenderHelp(t *testing.T) {
	content := renderHelp()

	if !strings.Contains(content, "dinghy Keybindings") {
		t.Error("Expected title in help content")
	}
	for _, want := range []string{":open <addr>", ":ask <question>", "Follow link by number"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}
}
