package browser

import (
	"net/url"
	"strings"
	"unicode"
)

// Kind tells how address-bar input should be treated.
type Kind int

const (
	// KindAddress is input that can be navigated to directly.
	KindAddress Kind = iota
	// KindSearch is input to hand to the search engine.
	KindSearch
)

// DefaultSearchEngine hosts search queries unless the config names another engine.
const DefaultSearchEngine = "www.google.com"

// Classify interprets raw address-bar input after trimming surrounding
// whitespace. The rules apply in order and the first match wins: a parseable
// http or https URL passes through unchanged; something that looks like a bare
// domain (a dot, no whitespace) gets an https:// prefix; everything else is a
// search query, returned as typed.
func Classify(input string) (Kind, string) {
	input = strings.TrimSpace(input)

	if u, err := url.Parse(input); err == nil {
		if (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return KindAddress, input
		}
	}

	if strings.Contains(input, ".") && !strings.ContainsFunc(input, unicode.IsSpace) {
		return KindAddress, "https://" + input
	}

	return KindSearch, input
}

// Resolve turns address-bar input into a fetchable URL, rendering search
// queries against engine.
func Resolve(input, engine string) string {
	kind, value := Classify(input)
	if kind == KindSearch {
		return SearchURL(engine, value)
	}
	return value
}

// SearchURL renders query as a search request against the engine host.
func SearchURL(engine, query string) string {
	if engine == "" {
		engine = DefaultSearchEngine
	}
	return "https://" + engine + "/search?q=" + url.QueryEscape(query)
}
