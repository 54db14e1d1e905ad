package htmlclean

import (
	"sort"
	"strings"
	"testing"
)

func TestExtractText_StripsTags(t *testing.T) {
	got := ExtractText("<html><body><h1>Title</h1><p>Hello <b>world</b></p></body></html>")
	if !strings.Contains(got, "Title") || !strings.Contains(got, "Hello") || !strings.Contains(got, "world") {
		t.Errorf("ExtractText = %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("ExtractText left markup: %q", got)
	}
}

func TestExtractText_DropsScriptAndStyleContent(t *testing.T) {
	got := ExtractText(`<html><head><style>.a{color:red}</style></head>
<body><script>alert('x')</script><p>visible</p></body></html>`)
	if strings.Contains(got, "alert") || strings.Contains(got, "color:red") {
		t.Errorf("ExtractText leaked block element content: %q", got)
	}
	if !strings.Contains(got, "visible") {
		t.Errorf("ExtractText dropped visible text: %q", got)
	}
}

func TestLinkSafe_RetainsAnchorsButDropsBlockElementContent(t *testing.T) {
	got := LinkSafe(`<html><head><style>.a{color:red}</style></head>
<body><script>alert('x')</script><a href="/x">link</a></body></html>`)
	if strings.Contains(got, "alert") || strings.Contains(got, "color:red") {
		t.Errorf("LinkSafe leaked block element content: %q", got)
	}
	if !strings.Contains(got, "<a") || !strings.Contains(got, `href="/x"`) {
		t.Errorf("LinkSafe stripped anchor tags: %q", got)
	}
}

func TestExtractLinks_ResolvesRelativeAgainstBase(t *testing.T) {
	rawHTML := `<a href="/about">About</a><a href="https://other.example/x">Other</a>`
	links := ExtractLinks(rawHTML, "https://example.com/dir/page.html")
	sort.Strings(links)
	want := []string{"https://example.com/about", "https://other.example/x"}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestExtractLinks_DropsNonHTTPSchemesAndFragments(t *testing.T) {
	rawHTML := `<a href="javascript:void(0)">x</a><a href="mailto:a@b.com">y</a><a href="#section">z</a>`
	links := ExtractLinks(rawHTML, "https://example.com/")
	if len(links) != 0 {
		t.Errorf("links = %v, want none", links)
	}
}

func TestExtractLinks_StripsFragmentFromResolvedLink(t *testing.T) {
	links := ExtractLinks(`<a href="/page#frag">x</a>`, "https://example.com/")
	if len(links) != 1 || links[0] != "https://example.com/page" {
		t.Errorf("links = %v", links)
	}
}

func TestExtractLinks_InvalidBaseReturnsNil(t *testing.T) {
	links := ExtractLinks(`<a href="/x">x</a>`, "::::not a uri")
	if links != nil {
		t.Errorf("links = %v, want nil", links)
	}
}
