package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vcashweb/internal/news"
)

type unknownPage struct{}

func (unknownPage) TemplateName() string { return "missing" }

func render(t *testing.T, page Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))
	return buf.String()
}

func TestRender_NewsPage(t *testing.T) {
	st := newFixtureStore(t, fixturePosts())
	st.SetSearch("Alpha")

	html := render(t, BuildNewsPage(st, translator("en-US")))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="en-US">`)
	assert.Contains(t, html, "<title>Vcash - Decentralized Money</title>")
	assert.Contains(t, html, `value="Alpha"`)
	assert.Contains(t, html, "Results: 2")
	assert.Contains(t, html, `<article id="post-1">`)
	assert.Contains(t, html, `<article id="post-2">`)
	assert.NotContains(t, html, `<article id="post-3">`)
	assert.Contains(t, html, "Latest news")
	assert.Contains(t, html, "Delta release notes for t...")
	assert.Contains(t, html, `target="_blank"`)
}

func TestRender_NewsPagePager(t *testing.T) {
	st := newFixtureStore(t, fixturePosts())
	st.SetPage(2)

	html := render(t, BuildNewsPage(st, translator("en-US")))

	assert.Contains(t, html, `<a rel="prev" href="/news?page=1">Previous</a>`)
	assert.NotContains(t, html, `rel="next"`)
	assert.Contains(t, html, "Page 2 / 2")
}

func TestRender_EscapesContent(t *testing.T) {
	st := newFixtureStore(t, []news.Post{{ID: "x", Title: "<script>alert(1)</script>", Body: "a & b"}})

	html := render(t, BuildNewsPage(st, translator("en-US")))

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "a &amp; b")
}

func TestRender_HomeAndSubscribed(t *testing.T) {
	st := newFixtureStore(t, fixturePosts())

	home := render(t, BuildHomePage(st, translator("en-US")))
	assert.Contains(t, home, "<h1>Decentralized Money</h1>")
	assert.Contains(t, home, "Alpha Launch")

	sub := render(t, BuildSubscribedPage(translator("de-DE")))
	assert.Contains(t, sub, `<html lang="de-DE">`)
	assert.Contains(t, sub, "Dezentrales Geld")
	assert.Contains(t, sub, "Thank you for subscribing")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, unknownPage{})
	assert.ErrorContains(t, err, `unknown page template "missing"`)
	assert.Zero(t, buf.Len())
}
