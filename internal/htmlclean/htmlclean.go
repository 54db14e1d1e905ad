// Package htmlclean turns a raw HTML page into the two things the crawler
// needs: the page's visible text (for indexing) and the absolute links it
// contains (for further crawling).
package htmlclean

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements are stripped entirely (tag and content) rather than
// flattened to text, since script/style content is not page text.
var blockElements = []string{"script", "style", "noscript", "head"}

// textPolicy returns the policy for the final text pass, which reduces the
// remaining markup to plain text. bluemonday's StrictPolicy strips every
// tag, which is what we want for that pass, but it does
// not drop element *content* for script/style — it only strips the tags
// around it, leaving JS/CSS source text behind. So block elements are
// removed with a dedicated pass first.
func textPolicy() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

// ExtractText returns the visible text of an HTML page: block elements
// (script, style, noscript, head) are dropped along with their content,
// then all remaining tags are stripped via bluemonday's strict policy.
func ExtractText(rawHTML string) string {
	return textPolicy().Sanitize(LinkSafe(rawHTML))
}

// LinkSafe returns the link-safe version of rawHTML: block elements
// (script, style, noscript, head) and their content are dropped, but all
// other tags — including <a href> — are left intact. ExtractLinks must run
// against this, not against ExtractText's output, since ExtractText's
// bluemonday pass strips every tag, anchors included.
func LinkSafe(rawHTML string) string {
	return stripBlockElements(rawHTML)
}

// stripBlockElements removes the named elements (and everything inside
// them) using the html tokenizer, since bluemonday only strips tags, not
// element content.
func stripBlockElements(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var out strings.Builder
	var skipDepth int
	var skipping string

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := tokenizer.Token()

		if skipping != "" {
			switch tt {
			case html.StartTagToken:
				if tok.Data == skipping {
					skipDepth++
				}
			case html.EndTagToken:
				if tok.Data == skipping {
					skipDepth--
					if skipDepth <= 0 {
						skipping = ""
					}
				}
			}
			continue
		}

		if tt == html.StartTagToken && isBlockElement(tok.Data) {
			skipping = tok.Data
			skipDepth = 1
			continue
		}

		out.WriteString(tok.String())
	}
	return out.String()
}

func isBlockElement(name string) bool {
	for _, b := range blockElements {
		if name == b {
			return true
		}
	}
	return false
}

// ExtractLinks walks rawHTML for <a href> targets and resolves each one
// against baseURI, returning only well-formed absolute http(s) URIs.
// Fragment-only and javascript: targets are dropped.
func ExtractLinks(rawHTML, baseURI string) []string {
	base, err := parseBase(baseURI)
	if err != nil {
		return nil
	}

	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var links []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken {
			continue
		}
		tok := tokenizer.Token()
		if tok.DataAtom != atom.A {
			continue
		}
		href, ok := attr(tok, "href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		resolved, ok := resolve(base, href)
		if !ok {
			continue
		}
		links = append(links, resolved)
	}
	return links
}

func attr(tok html.Token, name string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Clean runs ExtractText and is kept as the single entry point a caller
// reaching for "give me indexable text" would use; ExtractLinks remains
// separate since not every caller needs both.
func Clean(rawHTML string) string {
	return ExtractText(rawHTML)
}

func parseBase(baseURI string) (*url.URL, error) {
	return url.Parse(baseURI)
}

// resolve joins href against base, keeping only absolute http(s) results.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}
