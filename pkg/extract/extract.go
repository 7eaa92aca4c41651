// Package extract harvests candidate links from already-fetched HTML and
// funnels them through URL canonicalization. It never fetches anything
// itself; callers hand it the document.
package extract

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/PuerkitoBio/purell"
	"github.com/goware/urlx"

	"github.com/howeih/url-normalize/internal/utils"
	"github.com/howeih/url-normalize/pkg/dedup"
	"github.com/howeih/url-normalize/pkg/urlnorm"
)

// Links returns the href targets of all anchors in the document, resolved
// against base, in document order. Fragment-only and non-navigational
// (javascript:, mailto:, data:, tel:) hrefs are skipped.
func Links(r io.Reader, base string) ([]string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("extract: bad base url: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		switch strings.ToLower(ref.Scheme) {
		case "", "http", "https":
		default:
			return
		}
		links = append(links, baseURL.ResolveReference(ref).String())
	})
	return links, nil
}

// CleanCandidate applies a lenient pre-pass to a messy scraped string:
// scheme-less hosts are accepted and purell's safe normalizations applied.
// The result is suitable input for urlnorm.New.
func CleanCandidate(raw string) (string, error) {
	u, err := urlx.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return purell.NormalizeURL(u, purell.FlagsSafe), nil
}

// CanonicalLinks harvests links and returns their canonical forms in first
// sighting order with duplicates collapsed. Links that cannot be
// normalized are skipped; an invalid exclude pattern aborts the whole
// call.
func CanonicalLinks(r io.Reader, base string, excludePatterns []string) ([]string, error) {
	links, err := Links(r, base)
	if err != nil {
		return nil, err
	}

	seen := dedup.NewSet()
	var out []string
	for _, link := range links {
		canonical, err := urlnorm.NormalizeString(link, excludePatterns)
		if err != nil {
			if errors.Is(err, urlnorm.ErrInvalidPattern) {
				return nil, err
			}
			utils.Log.WithField("url", link).Debug("skipping unnormalizable link")
			continue
		}
		if seen.Add(canonical) {
			out = append(out, canonical)
		}
	}
	return out, nil
}
