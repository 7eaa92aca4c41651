// Package urlnorm canonicalizes URLs so that semantically equivalent forms
// compare equal, which makes the output suitable as a deduplication or
// cache key. Dot-segments are resolved, query parameters are sorted by key
// and optionally removed by regular expression, and host, port, percent
// encoding and fragment are passed through verbatim.
package urlnorm

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Normalizer holds one parsed URL and produces its canonical form. It is
// immutable after construction, so distinct instances can be used from
// distinct goroutines without coordination. Construct with New; the zero
// value is not usable.
type Normalizer struct {
	url *url.URL
}

// New parses raw (surrounding whitespace is ignored) and returns a
// Normalizer for it. Inputs that the URL grammar rejects, or that carry no
// scheme, fail with an error wrapping ErrInvalidURL.
func New(raw string) (*Normalizer, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, raw)
	}
	return &Normalizer{url: u}, nil
}

// NormalizeString parses raw and normalizes it in one call.
func NormalizeString(raw string, excludePatterns []string) (string, error) {
	n, err := New(raw)
	if err != nil {
		return "", err
	}
	return n.Normalize(excludePatterns)
}

// Normalize returns the canonical string form of the held URL.
//
// Every pattern in excludePatterns is compiled as a regular expression and
// any query parameter whose key matches any of them is dropped; a nil or
// empty slice means no filtering. All patterns are compiled before any
// filtering happens, so a bad pattern (error wrapping ErrInvalidPattern)
// never yields a partially filtered result. The method is a pure function
// of the held URL and its arguments.
func (n *Normalizer) Normalize(excludePatterns []string) (string, error) {
	rules, err := compileRules(excludePatterns)
	if err != nil {
		return "", err
	}
	pairs := filterPairs(parsePairs(n.url.RawQuery), rules)
	// Byte-wise ascending by key; equal keys keep their original order.
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	var b strings.Builder
	if n.url.Opaque != "" {
		b.WriteString(n.url.Scheme)
		b.WriteByte(':')
		b.WriteString(n.url.Opaque)
	} else {
		b.WriteString(n.url.Scheme)
		b.WriteString("://")
		b.WriteString(hostport(n.url))
		b.WriteString(resolveDotSegments(n.url.EscapedPath()))
	}
	for i, p := range pairs {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	if f := n.url.EscapedFragment(); f != "" {
		b.WriteByte('#')
		b.WriteString(f)
	}
	return b.String(), nil
}

// hostport rebuilds the authority exactly as parsed: no default-port
// special-casing, but a zero or absent port is never appended.
func hostport(u *url.URL) string {
	host := u.Hostname()
	if strings.Contains(host, ":") {
		// IPv6 literal, restore the brackets Hostname stripped.
		host = "[" + host + "]"
	}
	if p := u.Port(); p != "" && p != "0" {
		return host + ":" + p
	}
	return host
}

// resolveDotSegments removes "." segments and resolves ".." against the
// preceding segment where one exists. Segments keep their escaping and are
// never reordered; a ".." that would climb above the root is kept
// literally, and a trailing empty segment survives so trailing slashes are
// preserved.
func resolveDotSegments(p string) string {
	in := strings.Split(p, "/")
	out := make([]string, 0, len(in))
	for _, seg := range in {
		switch seg {
		case ".":
			// dropped
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." && out[n-1] != "" {
				out = out[:n-1]
			} else {
				out = append(out, seg)
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}

type pair struct {
	key, value string
}

// parsePairs splits the raw query into ordered key-value pairs, duplicates
// permitted, encoding untouched. Empty chunks ("a=1&&b=2") are dropped. A
// chunk without "=" becomes a pair with an empty value.
func parsePairs(rawQuery string) []pair {
	if rawQuery == "" {
		return nil
	}
	var pairs []pair
	for _, chunk := range strings.Split(rawQuery, "&") {
		if chunk == "" {
			continue
		}
		k, v, _ := strings.Cut(chunk, "=")
		pairs = append(pairs, pair{key: k, value: v})
	}
	return pairs
}

func compileRules(patterns []string) ([]*regexp.Regexp, error) {
	rules := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		rules = append(rules, re)
	}
	return rules, nil
}

// filterPairs drops every pair whose key matches any rule. Matching uses
// search semantics on the decoded key, falling back to the raw key when it
// cannot be decoded.
func filterPairs(pairs []pair, rules []*regexp.Regexp) []pair {
	if len(rules) == 0 {
		return pairs
	}
	kept := pairs[:0]
	for _, p := range pairs {
		key := p.key
		if dec, err := url.QueryUnescape(key); err == nil {
			key = dec
		}
		matched := false
		for _, re := range rules {
			if re.MatchString(key) {
				matched = true
				break
			}
		}
		if !matched {
			kept = append(kept, p)
		}
	}
	return kept
}
