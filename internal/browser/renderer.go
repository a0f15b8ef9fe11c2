package browser

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dinghy-browser/dinghy/internal/theme"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// RenderedPage holds the final terminal-ready output.
type RenderedPage struct {
	Title   string
	Content string // styled terminal text
	Text    string // plain text, kept for the assistant
	Links   []Link
}

// Render converts an Article's HTML content into styled terminal text. Links
// are numbered in document order and resolved against the article's final URL
// so follow mode always receives absolute addresses.
func Render(article *Article, width int) *RenderedPage {
	if width <= 0 {
		width = 80
	}

	// Constrain content width for readability.
	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return &RenderedPage{
			Title:   article.Title,
			Content: plainText(article, contentWidth),
			Text:    article.TextContent,
			Links:   nil,
		}
	}

	conv := newConverter(article.FinalURL)

	var md strings.Builder

	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.WriteString("*" + article.Byline + "*\n\n")
	}
	md.WriteString("---\n\n")

	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		md.WriteString(conv.convertNode(s, 0))
	})

	rendered, glamErr := renderWithGlamour(md.String(), contentWidth)
	if glamErr != nil {
		// Fallback: use the raw markdown.
		rendered = md.String()
	}

	return &RenderedPage{
		Title:   article.Title,
		Content: rendered,
		Text:    article.TextContent,
		Links:   conv.links,
	}
}

// renderWithGlamour renders markdown into styled terminal output, reusing the
// renderer until the width changes.
func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	out, err := cachedRenderer.Render(markdown)
	if err != nil {
		return "", err
	}

	return out, nil
}

// plainText is the last-resort rendering when the HTML cannot be parsed.
func plainText(article *Article, width int) string {
	var sb strings.Builder
	if article.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Current.Heading)
		sb.WriteString(titleStyle.Render(article.Title))
		sb.WriteString("\n\n")
	}
	sb.WriteString(wrapText(article.TextContent, width))
	return sb.String()
}

// mdConverter converts goquery HTML nodes to markdown, numbering links as it
// goes.
type mdConverter struct {
	base      *url.URL
	linkIndex int
	links     []Link
}

func newConverter(baseURL string) *mdConverter {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	return &mdConverter{base: base}
}

// unfollowable schemes never enter the link numbering.
var unfollowable = []string{"javascript:", "mailto:", "tel:", "data:"}

// resolveHref makes href absolute against the page URL. The second return is
// false for fragments and schemes that cannot be followed.
func (c *mdConverter) resolveHref(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, scheme := range unfollowable {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if c.base != nil {
		return c.base.ResolveReference(ref).String(), true
	}
	return href, true
}

func (c *mdConverter) convertNode(s *goquery.Selection, depth int) string {
	var sb strings.Builder

	switch goquery.NodeName(s) {
	case "h1":
		sb.WriteString(c.convertHeading(s, 1))
	case "h2":
		sb.WriteString(c.convertHeading(s, 2))
	case "h3":
		sb.WriteString(c.convertHeading(s, 3))
	case "h4":
		sb.WriteString(c.convertHeading(s, 4))
	case "h5":
		sb.WriteString(c.convertHeading(s, 5))
	case "h6":
		sb.WriteString(c.convertHeading(s, 6))
	case "p":
		sb.WriteString(c.convertParagraph(s))
	case "a":
		sb.WriteString(c.convertLink(s))
	case "ul":
		sb.WriteString(c.convertList(s, false, depth))
	case "ol":
		sb.WriteString(c.convertList(s, true, depth))
	case "blockquote":
		sb.WriteString(c.convertBlockquote(s))
	case "pre":
		sb.WriteString(c.convertCodeBlock(s))
	case "code":
		sb.WriteString(c.convertInlineCode(s))
	case "img":
		sb.WriteString(c.convertImage(s))
	case "hr":
		sb.WriteString("\n---\n\n")
	case "table":
		sb.WriteString(c.convertTable(s))
	case "br":
		sb.WriteString("  \n")
	case "strong", "b":
		sb.WriteString("**")
		c.convertInlineChildren(s, &sb)
		sb.WriteString("**")
	case "em", "i":
		sb.WriteString("*")
		c.convertInlineChildren(s, &sb)
		sb.WriteString("*")
	case "div", "article", "section", "main", "header", "footer", "figure", "span":
		s.Children().Each(func(i int, child *goquery.Selection) {
			sb.WriteString(c.convertNode(child, depth))
		})
	case "figcaption":
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString("*" + text + "*\n\n")
		}
	default:
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

func (c *mdConverter) convertHeading(s *goquery.Selection, level int) string {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return ""
	}
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

func (c *mdConverter) convertParagraph(s *goquery.Selection) string {
	var sb strings.Builder
	c.convertInlineChildren(s, &sb)
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func (c *mdConverter) convertInlineChildren(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(i int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			sb.WriteString(c.convertLink(child))
		case "strong", "b":
			sb.WriteString("**")
			c.convertInlineChildren(child, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			c.convertInlineChildren(child, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		default:
			c.convertInlineChildren(child, sb)
		}
	})
}

func (c *mdConverter) convertLink(s *goquery.Selection) string {
	href, exists := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if !exists {
		return text
	}

	resolved, ok := c.resolveHref(href)
	if !ok {
		return text
	}

	c.linkIndex++
	c.links = append(c.links, Link{
		Index: c.linkIndex,
		Text:  text,
		URL:   resolved,
	})

	// Markdown link with numbered reference for follow mode.
	return fmt.Sprintf("[%s](%s) **[%d]**", text, resolved, c.linkIndex)
}

func (c *mdConverter) convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	itemNum := 0

	indent := strings.Repeat("  ", depth)

	s.Find("> li").Each(func(i int, li *goquery.Selection) {
		itemNum++
		var prefix string
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, itemNum)
		} else {
			prefix = indent + "- "
		}

		var itemSb strings.Builder
		c.convertInlineChildren(li, &itemSb)
		sb.WriteString(prefix + strings.TrimSpace(itemSb.String()) + "\n")

		// Nested lists.
		li.Children().Each(func(j int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "ul":
				sb.WriteString(c.convertList(child, false, depth+1))
			case "ol":
				sb.WriteString(c.convertList(child, true, depth+1))
			}
		})
	})

	return sb.String() + "\n"
}

func (c *mdConverter) convertBlockquote(s *goquery.Selection) string {
	var sb strings.Builder
	s.Children().Each(func(i int, child *goquery.Selection) {
		content := c.convertNode(child, 0)
		for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
	})
	sb.WriteString("\n")
	return sb.String()
}

func (c *mdConverter) convertCodeBlock(s *goquery.Selection) string {
	code := s.Find("code")

	// Detect language from class.
	lang := ""
	if code.Length() > 0 {
		class, _ := code.Attr("class")
		if strings.Contains(class, "language-") {
			parts := strings.Split(class, "language-")
			if len(parts) > 1 {
				lang = strings.Fields(parts[1])[0]
			}
		}
	}

	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
	}

	return "```" + lang + "\n" + text + "\n```\n\n"
}

func (c *mdConverter) convertInlineCode(s *goquery.Selection) string {
	return "`" + s.Text() + "`"
}

func (c *mdConverter) convertImage(s *goquery.Selection) string {
	alt, _ := s.Attr("alt")
	src, _ := s.Attr("src")

	if alt == "" {
		alt = "image"
	}
	if resolved, ok := c.resolveHref(src); ok {
		src = resolved
	}

	return fmt.Sprintf("![%s](%s)\n\n", alt, src)
}

func (c *mdConverter) convertTable(s *goquery.Selection) string {
	var sb strings.Builder

	var headers []string
	s.Find("thead th, thead td").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var rows [][]string
	s.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		var row []string
		tr.Find("td, th").Each(func(j int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, row)
	})

	// No thead: take the first row as the header.
	if len(headers) == 0 {
		s.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
	}

	numCols := len(headers)
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return ""
	}

	for len(headers) < numCols {
		headers = append(headers, "")
	}

	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, numCols)
	for i := range separators {
		separators[i] = "---"
	}
	sb.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		for len(row) < numCols {
			row = append(row, "")
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	sb.WriteString("\n")
	return sb.String()
}

// wrapText wraps a string at the given width, breaking at word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		lineLen := 0
		for i, word := range words {
			wLen := len(word)
			if i > 0 && lineLen+1+wLen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wLen
		}
		result.WriteString("\n")
	}

	return strings.TrimRight(result.String(), "\n")
}
