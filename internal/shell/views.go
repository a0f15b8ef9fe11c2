package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dinghy-browser/dinghy/internal/assist"
	"github.com/dinghy-browser/dinghy/internal/browser"
	"github.com/dinghy-browser/dinghy/internal/theme"
)

// renderHistory renders the session history as a numbered page. Entry
// numbers double as follow indexes so f works from the history view.
func renderHistory(entries []string, cursor int) (string, []browser.Link) {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	indexStyle := lipgloss.NewStyle().
		Foreground(t.LinkIndex).
		Bold(true)

	urlStyle := lipgloss.NewStyle().
		Foreground(t.Link)

	currentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("📜 Session History"))
	sb.WriteString("\n\n")

	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("Nothing visited yet. Press 'o' to open a page."))
		sb.WriteString("\n")
		return sb.String(), nil
	}

	links := make([]browser.Link, 0, len(entries))
	for i, url := range entries {
		marker := "  "
		if i == cursor {
			marker = currentStyle.Render("➤ ")
		}
		idx := i + 1
		sb.WriteString(fmt.Sprintf("%s%s %s\n",
			marker,
			indexStyle.Render(fmt.Sprintf("[%d]", idx)),
			urlStyle.Render(url),
		))
		links = append(links, browser.Link{Index: idx, Text: url, URL: url})
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%d entries · press f then a number to revisit", len(entries))))
	sb.WriteString("\n")

	return sb.String(), links
}

// renderSuggestion renders an assistant reply as a page. The prompt is
// shown above the reply when the request came from :ask.
func renderSuggestion(prompt string, sug *assist.Suggestion, width int) string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	promptStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 2)

	headingStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 2)

	if width > 8 {
		promptStyle = promptStyle.Width(width - 4)
		bodyStyle = bodyStyle.Width(width - 4)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("✨ Assistant"))
	sb.WriteString("\n\n")

	if prompt != "" {
		sb.WriteString(promptStyle.Render("❯ " + prompt))
		sb.WriteString("\n\n")
	}

	sb.WriteString(bodyStyle.Render(sug.Text))
	sb.WriteString("\n")

	if sug.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(headingStyle.Render("  Details"))
		sb.WriteString("\n\n")
		sb.WriteString(bodyStyle.Render(sug.Explanation))
		sb.WriteString("\n")
	}

	return sb.String()
}

// errorPage renders a load failure in the viewport.
func errorPage(url string, err error) string {
	t := theme.Current

	errStyle := lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true).
		Padding(2, 4)

	detailStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 4)

	return errStyle.Render("Failed to load page") + "\n\n" +
		detailStyle.Render(fmt.Sprintf("URL: %s\nError: %s", url, err))
}

// renderHelp renders the keybinding reference.
func renderHelp() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("dinghy Keybindings"))
	sb.WriteString("\n\n")

	sections := []struct {
		name string
		keys []struct{ k, d string }
	}{
		{"Scrolling", []struct{ k, d string }{
			{"j / Down", "Scroll down"},
			{"k / Up", "Scroll up"},
			{"Ctrl+d", "Half page down"},
			{"Ctrl+u", "Half page up"},
			{"gg", "Go to top"},
			{"G", "Go to bottom"},
		}},
		{"Browsing", []struct{ k, d string }{
			{"o", "Open address / search"},
			{"f", "Follow link by number"},
			{"H", "Go back"},
			{"L", "Go forward"},
			{"r", "Reload page"},
			{"gh", "Go to homepage"},
			{"B", "Bookmark current page"},
			{"gb", "Show bookmarks"},
			{"Ctrl+h", "Session history"},
			{"Esc", "Back to the loaded page"},
		}},
		{"Assistant", []struct{ k, d string }{
			{"a", "Ask a question"},
			{"A", "Analyze current page"},
		}},
		{"Modes", []struct{ k, d string }{
			{":", "Command mode"},
			{"?", "Show this help"},
			{"q", "Quit"},
		}},
		{"Commands", []struct{ k, d string }{
			{":open <addr>", "Open address or search"},
			{":back", "Go back"},
			{":forward", "Go forward"},
			{":reload", "Reload page"},
			{":home", "Go to homepage"},
			{":history", "Show session history"},
			{":clearhistory", "Clear session history"},
			{":bookmark", "Bookmark current page"},
			{":bookmarks", "List bookmarks"},
			{":ask <question>", "Ask the assistant"},
			{":theme <name>", "Change theme"},
			{":quit", "Quit dinghy"},
		}},
	}

	for _, section := range sections {
		sb.WriteString(sectionStyle.Render(section.name))
		sb.WriteString("\n\n")
		for _, binding := range section.keys {
			sb.WriteString(keyStyle.Render(binding.k))
			sb.WriteString(descStyle.Render(binding.d))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
