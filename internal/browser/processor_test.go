package browser

import "testing"

const processorSample = `<html>
<head><title>  Sample Page  </title><style>body { color: red; }</style></head>
<body>
<script>console.log("ignored");</script>
<h1>Heading</h1>
<p>First   paragraph with
spread    whitespace.</p>
<a href="https://one.test">one</a>
<a href="/relative">two</a>
<a href="">empty</a>
<p>Second paragraph.</p>
</body>
</html>`

func TestPageTitle(t *testing.T) {
	title, ok := PageTitle(processorSample)
	if !ok {
		t.Fatal("Expected a title")
	}
	if title != "Sample Page" {
		t.Errorf("Expected 'Sample Page', got %q", title)
	}

	if _, ok := PageTitle("<html><body>no title</body></html>"); ok {
		t.Error("Expected no title for a document without one")
	}
}

func TestPageText(t *testing.T) {
	text, err := PageText(processorSample)
	if err != nil {
		t.Fatalf("PageText failed: %v", err)
	}

	want := "Heading First paragraph with spread whitespace. one two empty Second paragraph."
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestPageLinks(t *testing.T) {
	links, err := PageLinks(processorSample)
	if err != nil {
		t.Fatalf("PageLinks failed: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}
	if links[0] != "https://one.test" {
		t.Errorf("Expected https://one.test, got %s", links[0])
	}
	if links[1] != "/relative" {
		t.Errorf("Expected /relative, got %s", links[1])
	}
}
