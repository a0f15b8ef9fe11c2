package browser

import (
	"fmt"
	"strings"
	"testing"
)

func TestRenderBasicHTML(t *testing.T) {
	article := &Article{
		Title:  "Test Page",
		Byline: "By Author",
		Content: `<h1>Test Page</h1>
<p>Hello world. This is a <strong>bold</strong> and <em>italic</em> test.</p>
<p>Here is a <a href="https://example.com">link to example</a> and <a href="https://golang.org">Go website</a>.</p>
<ul>
<li>Item one</li>
<li>Item two</li>
<li>Item three</li>
</ul>
<pre><code class="language-go">func main() {
    fmt.Println("Hello")
}</code></pre>
<blockquote>This is a quote</blockquote>`,
		TextContent: "fallback text",
	}

	page := Render(article, 80)
	fmt.Println("=== RENDERED CONTENT ===")
	fmt.Println(page.Content)
	fmt.Println("=== LINKS ===")
	for _, l := range page.Links {
		fmt.Printf("[%d] %s -> %s\n", l.Index, l.Text, l.URL)
	}

	if len(page.Links) != 2 {
		t.Errorf("Expected 2 links, got %d", len(page.Links))
	}
	if page.Content == "" {
		t.Error("Content should not be empty")
	}
	if page.Title != "Test Page" {
		t.Errorf("Expected title 'Test Page', got '%s'", page.Title)
	}
}

func TestRenderResolvesRelativeLinks(t *testing.T) {
	article := &Article{
		Title:    "Links",
		FinalURL: "https://example.com/docs/index.html",
		Content: `<p>
<a href="guide.html">guide</a>
<a href="/about">about</a>
<a href="https://other.test/x">absolute</a>
<a href="#section">fragment</a>
<a href="mailto:hi@example.com">mail</a>
<a href="javascript:void(0)">script</a>
</p>`,
	}

	page := Render(article, 80)

	if len(page.Links) != 3 {
		t.Fatalf("Expected 3 followable links, got %d", len(page.Links))
	}
	if page.Links[0].URL != "https://example.com/docs/guide.html" {
		t.Errorf("Expected resolved relative link, got %s", page.Links[0].URL)
	}
	if page.Links[1].URL != "https://example.com/about" {
		t.Errorf("Expected resolved root link, got %s", page.Links[1].URL)
	}
	if page.Links[2].URL != "https://other.test/x" {
		t.Errorf("Expected absolute link unchanged, got %s", page.Links[2].URL)
	}
	for i, l := range page.Links {
		if l.Index != i+1 {
			t.Errorf("Expected link index %d, got %d", i+1, l.Index)
		}
	}
}

func TestRenderEmptyArticle(t *testing.T) {
	article := &Article{
		Title:       "",
		Content:     "",
		TextContent: "some text",
	}

	page := Render(article, 80)
	if page == nil {
		t.Error("Page should not be nil")
	}
}

func TestRenderWithTable(t *testing.T) {
	article := &Article{
		Title: "Table Test",
		Content: `<table>
<thead><tr><th>Name</th><th>Value</th></tr></thead>
<tbody>
<tr><td>Foo</td><td>Bar</td></tr>
<tr><td>Baz</td><td>Qux</td></tr>
</tbody>
</table>`,
		TextContent: "table text",
	}

	page := Render(article, 80)
	fmt.Println("=== TABLE CONTENT ===")
	fmt.Println(page.Content)

	if page.Content == "" {
		t.Error("Content should not be empty")
	}
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 9 {
			t.Errorf("Expected lines of at most 9 chars, got %q", line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != "one two three four five" {
		t.Errorf("Expected wrapping to preserve words, got %q", wrapped)
	}
}
