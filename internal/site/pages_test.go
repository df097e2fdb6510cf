package site

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcashweb/internal/i18n"
	"github.com/roach88/vcashweb/internal/news"
	"github.com/roach88/vcashweb/internal/schedule"
)

func fixturePosts() []news.Post {
	return []news.Post{
		{ID: "1", Title: "Alpha Launch", Body: "We launched.", Timestamp: 1500000000},
		{ID: "2", Title: "Beta", Body: "Alpha inside.", Timestamp: 1500086400},
		{ID: "3", Title: "Gamma", Body: "Nothing related.", Timestamp: 1500172800},
		{ID: "4", Title: "Delta release notes for the new wallet", Body: "Wallet update.", Timestamp: 1500259200},
		{ID: "5", Title: "Epsilon", Body: "Network upgrade.", Timestamp: 1500345600},
	}
}

// newFixtureStore builds a ready store whose searches commit immediately.
func newFixtureStore(t *testing.T, posts []news.Post) *news.Store {
	t.Helper()
	st := news.New(context.Background(),
		news.FetcherFunc(func(context.Context) ([]news.Post, error) { return posts, nil }),
		news.WithScheduler(schedule.Immediate{}),
	)
	<-st.Ready()
	return st
}

func translator(lang string) *i18n.Translator {
	return i18n.Bootstrap(context.Background(), i18n.NewFSLoader(nil), lang, []string{"common"}, nil)
}

// pageJSON marshals a page model the way the golden files store it.
func pageJSON(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(v))
	return buf.Bytes()
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBuildNewsPage_Golden(t *testing.T) {
	tests := []struct {
		name  string
		lang  string
		query string
		page  int
	}{
		{name: "news_page_one", lang: "en-US", page: 1},
		{name: "news_page_two", lang: "en-US", page: 2},
		{name: "news_search_alpha", lang: "en-US", query: "Alpha", page: 1},
		{name: "news_no_results_de", lang: "de-DE", query: "Zeta", page: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFixtureStore(t, fixturePosts())
			if tt.query != "" {
				st.SetSearch(tt.query)
			}
			st.SetPage(tt.page)

			page := BuildNewsPage(st, translator(tt.lang))
			newGoldie(t).Assert(t, tt.name, pageJSON(t, page))
		})
	}
}

func TestBuildHomePage_Golden(t *testing.T) {
	st := newFixtureStore(t, fixturePosts())

	page := BuildHomePage(st, translator("en-US"))
	newGoldie(t).Assert(t, "home", pageJSON(t, page))
}

func TestBuildSubscribedPage_Golden(t *testing.T) {
	page := BuildSubscribedPage(translator("de-DE"))
	newGoldie(t).Assert(t, "subscribed_de", pageJSON(t, page))
}

func TestBuildNewsPage_OutOfRangePage(t *testing.T) {
	st := newFixtureStore(t, fixturePosts())
	st.SetPage(7)

	page := BuildNewsPage(st, translator("en-US"))

	assert.Equal(t, 5, page.Count)
	assert.Empty(t, page.Posts)
	assert.Equal(t, "No posts match your search.", page.Empty)
	assert.Empty(t, page.Pager.Previous)
	assert.Empty(t, page.Pager.Next)
}

func TestBuildNewsPage_EmptyStore(t *testing.T) {
	st := newFixtureStore(t, nil)

	page := BuildNewsPage(st, translator("en-US"))

	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Posts)
	assert.Equal(t, 1, page.Pager.Pages)
	assert.Empty(t, page.Latest.Headlines)
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(translator("de-DE"))

	assert.Equal(t, "Vcash - Dezentrales Geld", h.Title)
	require.Len(t, h.Links, 5)
	assert.Equal(t, "Neuigkeiten", h.Links[0].Label)
	assert.False(t, h.Links[0].External)
	assert.True(t, h.Links[4].External)
}

func TestNewsURL(t *testing.T) {
	assert.Equal(t, "/news?page=2", NewsURL(2, ""))
	assert.Equal(t, "/news?page=1&q=Alpha+launch", NewsURL(1, "Alpha launch"))
}
