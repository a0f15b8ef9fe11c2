package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dinghy-browser/dinghy/internal/theme"
)

// StatusBar shows the current page info at the bottom of the screen.
type StatusBar struct {
	url        string
	title      string
	loading    bool
	scrollInfo string
	mode       string
	linkCount  int
	histPos    int // 1-based position in session history
	histLen    int
	width      int
	message    string // temporary status message
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetURL updates the displayed URL.
func (s *StatusBar) SetURL(url string) {
	s.url = url
}

// SetTitle updates the page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetMode sets the current mode indicator (NORMAL, ADDRESS, COMMAND, etc).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetLinkCount sets the total link count displayed.
func (s *StatusBar) SetLinkCount(n int) {
	s.linkCount = n
}

// SetHistory sets the session history position indicator. pos is 1-based;
// a total of zero hides the indicator.
func (s *StatusBar) SetHistory(pos, total int) {
	s.histPos = pos
	s.histLen = total
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	var modeIcon string
	switch s.mode {
	case "NORMAL":
		modeStyle = modeStyle.Background(t.Primary)
		modeIcon = "⚓ "
	case "ADDRESS":
		modeStyle = modeStyle.Background(t.Success)
		modeIcon = "✏ "
	case "COMMAND":
		modeStyle = modeStyle.Background(t.Accent)
		modeIcon = "⌘ "
	case "FOLLOW":
		modeStyle = modeStyle.Background(t.Link)
		modeIcon = "🔗 "
	case "ASSIST":
		modeStyle = modeStyle.Background(t.Info)
		modeIcon = "✨ "
	default:
		modeStyle = modeStyle.Background(t.Secondary)
	}

	mode := modeStyle.Render(modeIcon + s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	// Left side: loading indicator, message, or page title.
	var left string
	if s.loading {
		loadStyle := lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1)
		left = loadStyle.Render("⏳ Loading...")
	} else if s.message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	} else if s.title != "" {
		titleStyle := lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1)
		left = titleStyle.Render(s.title)
	} else if s.url != "" {
		urlStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Padding(0, 1)
		left = urlStyle.Render(s.url)
	}

	// Right side: history position + link count + scroll position.
	var right string
	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	if s.histLen > 0 {
		right += rightStyle.Render(fmt.Sprintf("⇄ %d/%d", s.histPos, s.histLen))
	}

	if s.linkCount > 0 {
		right += rightStyle.Render(fmt.Sprintf("🔗 %d links", s.linkCount))
	}

	scrollStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Background(t.Surface).
		Padding(0, 1)
	right += scrollStyle.Render("📜 " + s.scrollInfo)

	// Calculate spacing.
	modeWidth := lipgloss.Width(mode)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacerWidth := s.width - modeWidth - leftWidth - rightWidth
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	spacerStyle := lipgloss.NewStyle().
		Background(t.Surface)
	spacer := spacerStyle.Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
