package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

// A blank query clears the search and returns to the home page.
func TestSearchBlankQueryRedirectsHome(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	for _, target := range []string{"/search", "/search?q=", "/search?q=%20%20"} {
		resp := getPage(t, app, target, "")
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: expected redirect, got %d", target, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/" {
			t.Fatalf("%s: expected redirect to /, got %q", target, loc)
		}
	}
}

func TestSearchResults(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := getPage(t, app, "/search?q=sticker", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := bodyOf(t, resp)
	if !strings.Contains(body, "Adventure Sticker Pack") {
		t.Fatalf("expected sticker products in results; body=%s", body)
	}
	if strings.Contains(body, "Glossy Photo Prints") {
		t.Fatalf("photo-only product should not match 'sticker'; body=%s", body)
	}
}

func TestSearchIsCaseInsensitiveOverHTTP(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := getPage(t, app, "/search?q=GLOSSY", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := bodyOf(t, resp); !strings.Contains(body, "Glossy Photo Prints") {
		t.Fatalf("case-variant query should match; body=%s", body)
	}
}

// Zero hits still renders the results view, not the home page.
func TestSearchNoResultsShowsEmptyState(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := getPage(t, app, "/search?q=zzzzz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := bodyOf(t, resp); !strings.Contains(body, "No products matched your search.") {
		t.Fatalf("empty state missing; body=%s", body)
	}
}

func TestSearchRejectsGarbageQuery(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := getPage(t, app, "/search?q=%3Cscript%3E", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid query, got %d", resp.StatusCode)
	}
}

func TestCategoryPages(t *testing.T) {
	app, _, _ := newApp(t, "direct")

	resp := getPage(t, app, "/category/sticker", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sticker category expected 200, got %d", resp.StatusCode)
	}
	body := bodyOf(t, resp)
	if !strings.Contains(body, "Adventure Sticker Pack") || strings.Contains(body, "Glossy Photo Prints") {
		t.Fatalf("category page should only list its own products; body=%s", body)
	}

	resp = getPage(t, app, "/category/mugs", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category expected 404, got %d", resp.StatusCode)
	}
}
