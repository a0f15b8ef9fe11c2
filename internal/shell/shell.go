package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/dinghy-browser/dinghy/internal/assist"
	"github.com/dinghy-browser/dinghy/internal/browser"
	"github.com/dinghy-browser/dinghy/internal/storage"
	"github.com/dinghy-browser/dinghy/internal/theme"
	"github.com/dinghy-browser/dinghy/internal/ui"
)

// assistTimeout bounds every assistant request from the caller's side.
const assistTimeout = 30 * time.Second

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeAddress      // address bar focused
	ModeCommand      // command bar active
	ModeFollow       // link follow mode
	ModeAssist       // assistant prompt active
)

// Model is the top-level bubbletea model for dinghy. It is the sole owner of
// the navigation session; background loads and assistant calls report back
// through messages and never touch it directly.
type Model struct {
	// UI components
	addressBar ui.AddressBar
	pageView   ui.PageView
	statusBar  ui.StatusBar
	commandBar ui.CommandBar

	// Navigation
	session    *browser.Session
	fetcher    *browser.Fetcher
	pageCache  *lru.Cache[string, *browser.RenderedPage]
	page       *browser.RenderedPage
	cancelLoad context.CancelFunc
	loadSeq    int

	// Generated views (history, bookmarks, help, assistant)
	viewShown bool
	viewLinks []browser.Link

	// Assistant
	assistant *assist.Assistant

	// Storage
	db        *storage.DB
	bookmarks *storage.BookmarkStore
	config    *storage.Config

	keys     KeyMap
	mode     Mode
	width    int
	height   int
	lastGKey bool // for "gg"/"gh"/"gb" detection
	ready    bool
	startURL string

	logger *zap.Logger
}

// startMsg kicks off the initial navigation once the program is running, so
// all session changes happen inside Update.
type startMsg struct {
	url string
}

// pageLoadedMsg is sent when a page finishes loading.
type pageLoadedMsg struct {
	seq    int
	page   *browser.RenderedPage
	url    string
	status int
	err    error
}

// suggestionMsg is sent when the assistant responds.
type suggestionMsg struct {
	prompt     string
	suggestion *assist.Suggestion
	err        error
}

// New creates the dinghy shell.
func New(startURL string, cfg *storage.Config, logger *zap.Logger) Model {
	if cfg == nil {
		defaults := storage.DefaultConfig()
		cfg = &defaults
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Rendered pages are cached so back/forward is instant.
	pageCache, _ := lru.New[string, *browser.RenderedPage](50)

	m := Model{
		addressBar: ui.NewAddressBar(),
		pageView:   ui.NewPageView(),
		statusBar:  ui.NewStatusBar(),
		commandBar: ui.NewCommandBar(),
		session:    browser.NewSession(),
		fetcher:    browser.NewFetcher(),
		pageCache:  pageCache,
		keys:       DefaultKeyMap(),
		mode:       ModeNormal,
		startURL:   startURL,
		config:     cfg,
		logger:     logger,
	}

	m.assistant = assist.New(assist.Config{
		APIKey:   cfg.Assist.APIKey,
		Endpoint: cfg.Assist.Endpoint,
		Model:    cfg.Assist.Model,
	})

	// Storage is best-effort: browsing works without bookmarks.
	if dataDir, err := storage.DataDir(); err == nil {
		if db, dbErr := storage.OpenDB(dataDir); dbErr == nil {
			m.db = db
			m.bookmarks = storage.NewBookmarkStore(db)
		} else {
			logger.Warn("bookmark store unavailable", zap.Error(dbErr))
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.startURL != "" {
		url := m.startURL
		return func() tea.Msg {
			return startMsg{url: url}
		}
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case startMsg:
		cmd := m.navigateTo(msg.url)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case suggestionMsg:
		return m.handleSuggestion(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Forward to the page view for mouse events and the like.
	pv, cmd := m.pageView.Update(msg)
	m.pageView = *pv
	m.syncStatusBar()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Casting off..."
	}

	// Layout:
	// [address bar]
	// [page view]
	// [status bar]
	// [command bar] (if active)

	sections := []string{
		m.addressBar.View(),
		m.pageView.View(),
		m.statusBar.View(),
	}

	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.addressBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	addressBarHeight := 3 // border adds height
	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	viewportHeight := m.height - addressBarHeight - statusBarHeight - commandBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.pageView.SetSize(m.width, viewportHeight)
}

// quit cancels any pending load, closes storage, and exits.
func (m *Model) quit() tea.Cmd {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	if m.db != nil {
		m.db.Close()
	}
	return tea.Quit
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	switch m.mode {
	case ModeAddress:
		return m.handleAddressMode(msg)
	case ModeCommand, ModeFollow, ModeAssist:
		return m.handleCommandMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keys in normal (browsing) mode.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	// gg detection: first "g" arms a prefix, second "g" goes to top.
	case msg.String() == "g":
		if m.lastGKey {
			m.lastGKey = false
			m.pageView.GotoTop()
			m.syncStatusBar()
			return m, nil
		}
		m.lastGKey = true
		return m, nil

	// gh: "h" after "g" goes to the homepage.
	case msg.String() == "h":
		if m.lastGKey {
			m.lastGKey = false
			return m.goHome()
		}

	// gb: "b" after "g" shows bookmarks.
	case msg.String() == "b":
		if m.lastGKey {
			m.lastGKey = false
			m.showBookmarks()
			return m, nil
		}

	case key.Matches(msg, m.keys.ScrollDown):
		m.lastGKey = false
		m.pageView.LineDown(1)
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.lastGKey = false
		m.pageView.LineUp(1)
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.lastGKey = false
		m.pageView.HalfPageDown()
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.lastGKey = false
		m.pageView.HalfPageUp()
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.lastGKey = false
		m.pageView.GotoBottom()
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.OpenAddress):
		m.lastGKey = false
		m.mode = ModeAddress
		m.addressBar.Reset()
		m.statusBar.SetMode("ADDRESS")
		return m, m.addressBar.Focus()

	case key.Matches(msg, m.keys.Back):
		m.lastGKey = false
		if url, ok := m.session.Back(); ok {
			return m, m.loadPage(url)
		}
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		m.lastGKey = false
		if url, ok := m.session.Forward(); ok {
			return m, m.loadPage(url)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.lastGKey = false
		return m, m.reload()

	case key.Matches(msg, m.keys.FollowLink):
		m.lastGKey = false
		m.mode = ModeFollow
		m.statusBar.SetMode("FOLLOW")
		cmd := m.commandBar.Open(ui.CommandFollow)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Ask):
		m.lastGKey = false
		m.mode = ModeAssist
		m.statusBar.SetMode("ASSIST")
		cmd := m.commandBar.Open(ui.CommandAssist)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.AnalyzePage):
		m.lastGKey = false
		return m, m.analyzePage()

	case key.Matches(msg, m.keys.CommandMode):
		m.lastGKey = false
		m.mode = ModeCommand
		m.statusBar.SetMode("COMMAND")
		cmd := m.commandBar.Open(ui.CommandEx)
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.lastGKey = false
		m.showHelp()
		return m, nil

	case key.Matches(msg, m.keys.Bookmark):
		m.lastGKey = false
		m.bookmarkCurrent()
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.lastGKey = false
		m.showHistory()
		return m, nil

	// Esc dismisses a generated view and restores the loaded page.
	case msg.Type == tea.KeyEsc:
		m.lastGKey = false
		m.restorePage()
		return m, nil
	}

	// Reset g key if another key was pressed.
	m.lastGKey = false

	// Forward to the page view for mouse scroll, etc.
	pv, cmd := m.pageView.Update(msg)
	m.pageView = *pv
	m.syncStatusBar()
	return m, cmd
}

// handleAddressMode processes keys when the address bar is focused.
func (m Model) handleAddressMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.addressBar.Blur()
		m.statusBar.SetMode("NORMAL")
		return m, nil

	case tea.KeyEnter:
		input := m.addressBar.Value()
		m.mode = ModeNormal
		m.addressBar.Blur()
		m.statusBar.SetMode("NORMAL")
		if strings.TrimSpace(input) != "" {
			return m, m.navigateTo(input)
		}
		return m, nil
	}

	ab, cmd := m.addressBar.Update(msg)
	m.addressBar = *ab
	return m, cmd
}

// handleCommandMode processes keys in command/follow/assist mode.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.mode = ModeNormal
		m.statusBar.SetMode("NORMAL")
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.mode = ModeNormal
		m.statusBar.SetMode("NORMAL")
		m.layout()
		return m.handleCommandResult(result)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

// handleCommandResult processes a submitted command bar value.
func (m Model) handleCommandResult(result ui.CommandResult) (tea.Model, tea.Cmd) {
	switch result.Type {
	case ui.CommandEx:
		return m.executeCommand(result.Value)
	case ui.CommandFollow:
		return m.followLink(result.Value)
	case ui.CommandAssist:
		if result.Value == "" {
			return m, nil
		}
		return m, m.askAssistant(result.Value)
	}
	return m, nil
}

// executeCommand handles :commands.
func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := ParseCommand(input)
	if err != nil {
		m.statusBar.SetMessage(err.Error())
		return m, nil
	}
	m.logger.Debug("command", zap.String("input", input))

	switch cmd.Op {
	case OpNone:
		return m, nil
	case OpQuit:
		return m, m.quit()
	case OpOpen:
		return m, m.navigateTo(cmd.Arg)
	case OpBack:
		if url, ok := m.session.Back(); ok {
			return m, m.loadPage(url)
		}
		m.statusBar.SetMessage("Already at the oldest entry")
	case OpForward:
		if url, ok := m.session.Forward(); ok {
			return m, m.loadPage(url)
		}
		m.statusBar.SetMessage("Already at the newest entry")
	case OpReload:
		return m, m.reload()
	case OpHome:
		return m.goHome()
	case OpHistory:
		m.showHistory()
	case OpClearHistory:
		m.session.Clear()
		m.statusBar.SetMessage("Session history cleared")
		m.syncStatusBar()
	case OpBookmark:
		m.bookmarkCurrent()
	case OpBookmarks:
		m.showBookmarks()
	case OpTheme:
		m.setTheme(cmd.Arg)
	case OpAsk:
		return m, m.askAssistant(cmd.Arg)
	case OpHelp:
		m.showHelp()
	}

	return m, nil
}

// followLink navigates to a link by its index number. Generated views carry
// their own link lists; otherwise the loaded page's links are used.
func (m Model) followLink(input string) (tea.Model, tea.Cmd) {
	num, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Invalid link number: %s", input))
		return m, nil
	}

	links := m.viewLinks
	if !m.viewShown && m.page != nil {
		links = m.page.Links
	}

	for _, link := range links {
		if link.Index == num {
			return m, m.navigateTo(link.URL)
		}
	}

	m.statusBar.SetMessage(fmt.Sprintf("Link [%d] not found", num))
	return m, nil
}

// navigateTo records a visit and loads the page. The input can be a URL, a
// bare domain, or search terms; invalid addresses leave the session as it was.
func (m *Model) navigateTo(input string) tea.Cmd {
	target := browser.Resolve(input, m.searchEngine())

	if _, err := m.session.Navigate(target); err != nil {
		m.logger.Warn("navigation rejected",
			zap.String("input", input),
			zap.Error(err),
		)
		m.statusBar.SetMessage(fmt.Sprintf("Cannot open %q: %s", input, err))
		return nil
	}

	m.logger.Info("navigate", zap.String("url", target))
	return m.loadPage(target)
}

// loadPage fetches and renders a page without touching session history.
// Back, forward, and reload use it directly.
func (m *Model) loadPage(url string) tea.Cmd {
	// Cancel the previous load if any; the sequence number makes sure a
	// superseded result is dropped even if it still arrives.
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
	m.loadSeq++
	seq := m.loadSeq

	m.viewShown = false
	m.viewLinks = nil
	m.addressBar.SetValue(url)
	m.statusBar.SetMessage("")

	if m.pageCache != nil {
		if cached, ok := m.pageCache.Get(url); ok {
			return func() tea.Msg {
				return pageLoadedMsg{seq: seq, page: cached, url: url}
			}
		}
	}

	m.statusBar.SetLoading(true)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelLoad = cancel

	fetcher := m.fetcher
	pageCache := m.pageCache
	logger := m.logger
	renderWidth := m.width
	if renderWidth <= 0 {
		renderWidth = 80
	}

	return func() tea.Msg {
		result, err := fetcher.FetchWithContext(ctx, url)
		if err != nil {
			return pageLoadedMsg{seq: seq, err: err, url: url}
		}

		article, err := browser.Extract(result)
		if err != nil {
			return pageLoadedMsg{seq: seq, err: err, url: url}
		}

		page := browser.Render(article, renderWidth)

		// Cache under the requested URL so history lookups hit.
		if pageCache != nil {
			pageCache.Add(url, page)
		}

		logger.Info("page loaded",
			zap.String("url", result.FinalURL),
			zap.Int("status", result.StatusCode),
			zap.Duration("fetch", result.Duration),
		)

		return pageLoadedMsg{seq: seq, page: page, url: result.FinalURL, status: result.StatusCode}
	}
}

// handlePageLoaded processes a completed page load.
func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		// A newer load superseded this one.
		return m, nil
	}

	m.cancelLoad = nil
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.logger.Warn("page load failed",
			zap.String("url", msg.url),
			zap.Error(msg.err),
		)
		m.statusBar.SetMessage(fmt.Sprintf("Error: %s", msg.err))
		m.statusBar.SetTitle("Error")
		m.pageView.SetContent(errorPage(msg.url, msg.err))
		m.syncStatusBar()
		return m, nil
	}

	m.page = msg.page
	m.pageView.SetContent(msg.page.Content)
	m.addressBar.SetValue(msg.url)
	m.statusBar.SetTitle(msg.page.Title)
	m.statusBar.SetURL(msg.url)
	m.statusBar.SetLinkCount(len(msg.page.Links))
	if msg.status >= 400 {
		m.statusBar.SetMessage(fmt.Sprintf("Server returned %d", msg.status))
	}
	m.syncStatusBar()

	return m, nil
}

// handleSuggestion processes an assistant reply.
func (m Model) handleSuggestion(msg suggestionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Assistant error: %s", msg.err))
		return m, nil
	}
	if msg.suggestion == nil {
		return m, nil
	}

	m.statusBar.SetMessage("")
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.showView("Assistant", renderSuggestion(msg.prompt, msg.suggestion, width), nil)
	return m, nil
}

// askAssistant sends a free-form prompt to the assistant.
func (m *Model) askAssistant(prompt string) tea.Cmd {
	assistant := m.assistant
	logger := m.logger
	m.statusBar.SetMessage("✨ Thinking...")

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
		defer cancel()

		sug, err := assistant.SuggestAction(ctx, prompt)
		if err != nil {
			logger.Warn("assistant request failed", zap.Error(err))
		}
		return suggestionMsg{prompt: prompt, suggestion: sug, err: err}
	}
}

// analyzePage asks the assistant about the current page.
func (m *Model) analyzePage() tea.Cmd {
	url, ok := m.session.Current()
	if !ok || m.page == nil {
		m.statusBar.SetMessage("No page to analyze")
		return nil
	}

	assistant := m.assistant
	logger := m.logger
	text := m.page.Text
	m.statusBar.SetMessage("✨ Analyzing page...")

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
		defer cancel()

		sug, err := assistant.ProcessPage(ctx, url, text)
		if err != nil {
			logger.Warn("page analysis failed", zap.Error(err))
		}
		return suggestionMsg{suggestion: sug, err: err}
	}
}

// reload refetches the current page, bypassing the cache.
func (m *Model) reload() tea.Cmd {
	url, ok := m.session.Current()
	if !ok {
		m.statusBar.SetMessage("Nothing to reload")
		return nil
	}
	if m.pageCache != nil {
		m.pageCache.Remove(url)
	}
	return m.loadPage(url)
}

// goHome navigates to the configured homepage.
func (m Model) goHome() (tea.Model, tea.Cmd) {
	home := ""
	if m.config != nil {
		home = m.config.Homepage
	}
	if home == "" {
		m.statusBar.SetMessage("No homepage configured")
		return m, nil
	}
	return m, m.navigateTo(home)
}

// bookmarkCurrent saves the current page to the bookmark store.
func (m *Model) bookmarkCurrent() {
	if m.bookmarks == nil {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	url, ok := m.session.Current()
	if !ok {
		m.statusBar.SetMessage("No page to bookmark")
		return
	}
	title := url
	if m.page != nil && m.page.Title != "" {
		title = m.page.Title
	}
	if m.bookmarks.Add(url, title) {
		m.statusBar.SetMessage(fmt.Sprintf("Bookmarked: %s", title))
	} else {
		m.statusBar.SetMessage("Already bookmarked")
	}
}

// setTheme switches themes, persisting the choice.
func (m *Model) setTheme(name string) {
	if name == "" {
		m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s",
			theme.Current.Name, strings.Join(theme.List(), ", ")))
		return
	}
	if !theme.Set(name) {
		m.statusBar.SetMessage(fmt.Sprintf("Unknown theme: %s (available: %s)",
			name, strings.Join(theme.List(), ", ")))
		return
	}
	if m.config != nil {
		m.config.Theme = name
		if err := m.config.Save(); err != nil {
			m.logger.Warn("config save failed", zap.Error(err))
		}
	}
	m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", name))
}

// showHistory renders the session history into the viewport.
func (m *Model) showHistory() {
	entries, cursor := m.session.Snapshot()
	content, links := renderHistory(entries, cursor)
	m.showView("Session History", content, links)
}

// showBookmarks renders the bookmark list into the viewport.
func (m *Model) showBookmarks() {
	if m.bookmarks == nil {
		m.statusBar.SetMessage("Bookmarks not available")
		return
	}
	content, links := storage.RenderBookmarks(m.bookmarks.List())
	m.showView("Bookmarks", content, links)
}

// showHelp renders the keybinding reference into the viewport.
func (m *Model) showHelp() {
	m.showView("Help", renderHelp(), nil)
}

// showView puts generated content in the viewport in place of the page.
func (m *Model) showView(title, content string, links []browser.Link) {
	m.viewShown = true
	m.viewLinks = links
	m.pageView.SetContent(content)
	m.statusBar.SetTitle(title)
	m.statusBar.SetLinkCount(len(links))
	m.syncStatusBar()
}

// restorePage puts the loaded page back after a generated view.
func (m *Model) restorePage() {
	if !m.viewShown {
		return
	}
	m.viewShown = false
	m.viewLinks = nil
	if m.page == nil {
		return
	}
	m.pageView.SetContent(m.page.Content)
	m.statusBar.SetTitle(m.page.Title)
	m.statusBar.SetMessage("")
	m.statusBar.SetLinkCount(len(m.page.Links))
	m.syncStatusBar()
}

// searchEngine returns the host search queries are sent to.
func (m *Model) searchEngine() string {
	if m.config != nil && m.config.SearchEngine != "" {
		return m.config.SearchEngine
	}
	return browser.DefaultSearchEngine
}

// syncStatusBar updates the status bar with current state.
func (m *Model) syncStatusBar() {
	m.statusBar.SetScrollInfo(m.pageView.ScrollInfo())

	entries, cursor := m.session.Snapshot()
	m.statusBar.SetHistory(cursor+1, len(entries))

	if m.viewShown {
		m.statusBar.SetLinkCount(len(m.viewLinks))
	} else if m.page != nil {
		m.statusBar.SetLinkCount(len(m.page.Links))
	}
}
