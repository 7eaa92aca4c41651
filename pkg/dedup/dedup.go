// Package dedup tracks canonical URL forms so repeated sightings of the
// same resource collapse to one. The in-memory Set covers a single run;
// Store persists sightings across runs in SQLite.
package dedup

import (
	"sort"

	"github.com/howeih/url-normalize/pkg/urlnorm"
)

// Set is an in-memory registry of canonical forms. Not safe for concurrent
// use.
type Set struct {
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add records canonical and reports whether this was its first sighting.
func (s *Set) Add(canonical string) bool {
	if _, ok := s.seen[canonical]; ok {
		return false
	}
	s.seen[canonical] = struct{}{}
	return true
}

// AddURL normalizes raw with the given exclude patterns and records the
// result. It returns the canonical form and whether it was new.
func (s *Set) AddURL(raw string, excludePatterns []string) (string, bool, error) {
	canonical, err := urlnorm.NormalizeString(raw, excludePatterns)
	if err != nil {
		return "", false, err
	}
	return canonical, s.Add(canonical), nil
}

func (s *Set) Len() int {
	return len(s.seen)
}

// Values returns the recorded canonical forms in sorted order.
func (s *Set) Values() []string {
	out := make([]string, 0, len(s.seen))
	for u := range s.seen {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
