package dedup

import (
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// GroupBySite buckets canonical URLs by registered domain, so
// https://a.example.com and https://b.example.com land in the same bucket.
// Hosts without a recognizable public suffix (IP literals, localhost)
// bucket under the literal host.
func GroupBySite(urls []string) map[string][]string {
	groups := make(map[string][]string)
	for _, raw := range urls {
		host := raw
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			host = strings.ToLower(u.Hostname())
		}
		site, err := publicsuffix.Domain(host)
		if err != nil {
			site = host
		}
		groups[site] = append(groups[site], raw)
	}
	return groups
}
