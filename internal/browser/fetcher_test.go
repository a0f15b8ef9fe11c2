package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer srv.Close()

	result, err := NewFetcher().Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", result.StatusCode)
	}
	if !IsHTML(result.ContentType) {
		t.Errorf("Expected an HTML content type, got %s", result.ContentType)
	}
	if !strings.Contains(string(result.Body), "hello") {
		t.Error("Expected the body to contain the served text")
	}
	if result.URL != srv.URL {
		t.Errorf("Expected URL %s, got %s", srv.URL, result.URL)
	}
}

func TestFetcherFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})

	result, err := NewFetcher().Fetch(srv.URL + "/old")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if result.FinalURL != srv.URL+"/new" {
		t.Errorf("Expected final URL %s/new, got %s", srv.URL, result.FinalURL)
	}
	if result.URL != srv.URL+"/old" {
		t.Errorf("Expected requested URL to be preserved, got %s", result.URL)
	}
}

func TestFetcherCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFetcher().FetchWithContext(ctx, srv.URL); err == nil {
		t.Error("Expected an error from a cancelled context")
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHTML(tt.contentType); got != tt.want {
			t.Errorf("IsHTML(%q): expected %v, got %v", tt.contentType, tt.want, got)
		}
	}
}
