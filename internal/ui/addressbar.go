package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dinghy-browser/dinghy/internal/theme"
)

// AddressBar is the address input at the top of the screen. It accepts
// full URLs, bare domains, and search terms alike.
type AddressBar struct {
	input  textinput.Model
	active bool
	width  int
}

// NewAddressBar creates a new address bar.
func NewAddressBar() AddressBar {
	ti := textinput.New()
	ti.Placeholder = "Enter address or search..."
	ti.CharLimit = 2048
	ti.Width = 60

	return AddressBar{
		input: ti,
	}
}

// SetWidth updates the address bar width.
func (a *AddressBar) SetWidth(w int) {
	a.width = w
	a.input.Width = w - 8 // account for prompt and padding
}

// Focus activates the address bar for input.
func (a *AddressBar) Focus() tea.Cmd {
	a.active = true
	return a.input.Focus()
}

// Blur deactivates the address bar.
func (a *AddressBar) Blur() {
	a.active = false
	a.input.Blur()
}

// IsActive reports whether the address bar is focused.
func (a *AddressBar) IsActive() bool {
	return a.active
}

// Value returns the current input text.
func (a *AddressBar) Value() string {
	return a.input.Value()
}

// SetValue sets the address bar text and moves the cursor to the end.
func (a *AddressBar) SetValue(s string) {
	a.input.SetValue(s)
	a.input.CursorEnd()
}

// Reset clears the address bar.
func (a *AddressBar) Reset() {
	a.input.Reset()
}

// Update handles messages for the address bar.
func (a *AddressBar) Update(msg tea.Msg) (*AddressBar, tea.Cmd) {
	if !a.active {
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the address bar.
func (a *AddressBar) View() string {
	t := theme.Current

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(a.width - 2)

	if a.active {
		barStyle = barStyle.
			Foreground(t.Text).
			BorderForeground(t.BorderFocus)
	} else {
		barStyle = barStyle.
			Foreground(t.TextDim).
			BorderForeground(t.Border)
	}

	promptStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	content := promptStyle.Render("⚓") + " " + a.input.View()

	return barStyle.Render(content)
}
