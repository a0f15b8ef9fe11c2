package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageTitle returns the contents of the document's title tag.
func PageTitle(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", false
	}
	return title, true
}

// PageText returns the whitespace-normalized text of the document body, with
// script and style content stripped. The assistant feeds from this.
func PageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	body := doc.Find("body")
	body.Find("script, style, noscript, template").Remove()

	return strings.Join(strings.Fields(body.Text()), " "), nil
}

// PageLinks returns the href values of the document's anchors in document
// order. Empty hrefs are skipped; no resolution happens here.
func PageLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(href) != "" {
			links = append(links, href)
		}
	})

	return links, nil
}
