package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAdd(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Add("https://example.com/a"))
	assert.False(t, s.Add("https://example.com/a"))
	assert.True(t, s.Add("https://example.com/b"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, s.Values())
}

func TestSetAddURLCollapsesEquivalentForms(t *testing.T) {
	s := NewSet()

	canonical, fresh, err := s.AddURL("https://example.com/a/./b/../c?z=1&a=2", nil)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, "https://example.com/a/c?a=2&z=1", canonical)

	// Same resource, different spelling.
	canonical2, fresh2, err := s.AddURL("https://example.com/a/c?a=2&z=1", nil)
	require.NoError(t, err)
	assert.False(t, fresh2)
	assert.Equal(t, canonical, canonical2)
	assert.Equal(t, 1, s.Len())
}

func TestSetAddURLPropagatesErrors(t *testing.T) {
	s := NewSet()

	_, _, err := s.AddURL("not a url", nil)
	assert.Error(t, err)

	_, _, err = s.AddURL("https://example.com/a?b=1", []string{"("})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestGroupBySite(t *testing.T) {
	groups := GroupBySite([]string{
		"https://a.example.com/x",
		"https://b.example.com/y",
		"https://other.co.uk/z",
		"https://www.other.co.uk/w",
	})

	require.Len(t, groups, 2)
	assert.Len(t, groups["example.com"], 2)
	assert.Len(t, groups["other.co.uk"], 2)
}

func TestGroupBySiteUnparseableHost(t *testing.T) {
	groups := GroupBySite([]string{"https://localhost:9000/a"})

	require.Len(t, groups, 1)
	assert.Contains(t, groups, "localhost")
}
