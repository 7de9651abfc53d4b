package router

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match_Exact(t *testing.T) {
	t.Parallel()

	table := NewTable()
	e := NewEntry("/status", "")
	require.NoError(t, table.Register(e))

	m := NewMatcher(table)

	got, ok := m.Match("/status", url.Values{})
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestMatcher_Match_NormalizesRequestPath(t *testing.T) {
	t.Parallel()

	table := NewTable()
	e := NewEntry("/status", "")
	require.NoError(t, table.Register(e))

	m := NewMatcher(table)

	for _, raw := range []string{"/status/", "status", "//status//"} {
		got, ok := m.Match(raw, url.Values{})
		require.True(t, ok, "raw path %q", raw)
		assert.Same(t, e, got)
	}
}

func TestMatcher_Match_NoPrefixMatching(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(NewEntry("/status", "")))

	m := NewMatcher(table)

	_, ok := m.Match("/status/extra", url.Values{})
	assert.False(t, ok)
}

func TestMatcher_Match_QueryKeyPresence(t *testing.T) {
	t.Parallel()

	table := NewTable()
	generic := NewEntry("/download", "")
	keyed := NewEntry("/download", "id")
	require.NoError(t, table.Register(generic))
	require.NoError(t, table.Register(keyed))

	m := NewMatcher(table)

	// Request with the key goes to the keyed entry even though the
	// catch-all also matches.
	got, ok := m.Match("/download", url.Values{"id": {"5"}})
	require.True(t, ok)
	assert.Same(t, keyed, got)

	// Key value is irrelevant, only presence counts.
	got, ok = m.Match("/download", url.Values{"id": {""}})
	require.True(t, ok)
	assert.Same(t, keyed, got)

	// Without the key the catch-all wins.
	got, ok = m.Match("/download", url.Values{})
	require.True(t, ok)
	assert.Same(t, generic, got)

	// Unrelated keys fall through to the catch-all too.
	got, ok = m.Match("/download", url.Values{"other": {"x"}})
	require.True(t, ok)
	assert.Same(t, generic, got)
}

func TestMatcher_Match_KeyedOnly_NoFallback(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(NewEntry("/export", "format")))

	m := NewMatcher(table)

	_, ok := m.Match("/export", url.Values{})
	assert.False(t, ok)

	got, ok := m.Match("/export", url.Values{"format": {"csv"}})
	require.True(t, ok)
	assert.Equal(t, "format", got.QueryKey())
}

func TestMatcher_Match_EmptyTable(t *testing.T) {
	t.Parallel()

	m := NewMatcher(NewTable())

	_, ok := m.Match("/anything", url.Values{})
	assert.False(t, ok)
}

func TestMatcher_Match_RoundTrip(t *testing.T) {
	t.Parallel()

	table := NewTable()

	type pair struct {
		path string
		key  string
	}

	var pairs []pair
	for i := 0; i < 20; i++ {
		pairs = append(pairs,
			pair{path: fmt.Sprintf("/r/%d", i), key: ""},
			pair{path: fmt.Sprintf("/r/%d", i), key: "id"},
		)
	}

	for _, p := range pairs {
		require.NoError(t, table.Register(NewEntry(p.path, p.key)))
	}

	m := NewMatcher(table)

	// Matching each entry's own (path, queryKey) combination returns
	// exactly that entry.
	for _, p := range pairs {
		query := url.Values{}
		if p.key != "" {
			query.Set(p.key, "1")
		}

		got, ok := m.Match(p.path, query)
		require.True(t, ok, "pair %v", p)
		assert.Equal(t, p.path, got.Path())
		assert.Equal(t, p.key, got.QueryKey())
	}
}
