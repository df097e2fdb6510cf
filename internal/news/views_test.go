package news

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioPosts() []Post {
	return []Post{
		{ID: "1", Title: "Alpha Launch", Body: "We launched.", Timestamp: 1},
		{ID: "2", Title: "Beta", Body: "Alpha inside.", Timestamp: 2},
		{ID: "3", Title: "Gamma", Body: "Nothing related.", Timestamp: 3},
	}
}

func makePosts(n int) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = Post{
			ID:        ID(fmt.Sprint(i + 1)),
			Title:     fmt.Sprintf("Post number %d with a long descriptive title", i+1),
			Body:      fmt.Sprintf("body %d", i+1),
			Timestamp: Timestamp(1000 + i),
		}
	}
	return posts
}

func ids(posts []Post) []ID {
	out := make([]ID, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"\t\n", []string{}},
		{"alpha", []string{"alpha"}},
		{"  alpha   beta ", []string{"alpha", "beta"}},
		{"Alpha\tbeta", []string{"Alpha", "beta"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			got := Tokenize(tt.raw)
			assert.Len(t, got, len(tt.want))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		page, start, end int
	}{
		{1, 0, 3},
		{2, 3, 6},
		{3, 6, 9},
		{0, -3, 0},
		{-1, -6, -3},
	}
	for _, tt := range tests {
		start, end := Window(tt.page, PerPage)
		assert.Equal(t, tt.start, start, "page %d start", tt.page)
		assert.Equal(t, tt.end, end, "page %d end", tt.page)
	}
}

func TestFilter_NoKeywordsReturnsAll(t *testing.T) {
	got := Filter(scenarioPosts(), nil, 1, PerPage)

	assert.Equal(t, 3, got.Count)
	if diff := cmp.Diff(scenarioPosts(), got.Posts); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_KeywordInTitleOrBody(t *testing.T) {
	// "Alpha" is in the title of 1 and the body of 2
	got := Filter(scenarioPosts(), []string{"Alpha"}, 1, PerPage)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []ID{"1", "2"}, ids(got.Posts))
}

func TestFilter_CaseSensitive(t *testing.T) {
	got := Filter(scenarioPosts(), []string{"alpha"}, 1, PerPage)

	assert.Equal(t, 0, got.Count)
	assert.Empty(t, got.Posts)
	assert.NotNil(t, got.Posts)
}

func TestFilter_LowercaseSubstring(t *testing.T) {
	// Substring containment: "lpha" hits "Alpha" in both posts
	got := Filter(scenarioPosts(), []string{"lpha"}, 1, PerPage)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []ID{"1", "2"}, ids(got.Posts))
}

func TestFilter_AllKeywordsRequired(t *testing.T) {
	posts := scenarioPosts()

	got := Filter(posts, []string{"Alpha", "launched"}, 1, PerPage)
	assert.Equal(t, []ID{"1"}, ids(got.Posts))

	got = Filter(posts, []string{"Alpha", "Gamma"}, 1, PerPage)
	assert.Equal(t, 0, got.Count)
}

func TestFilter_KeywordInBothFieldsCountsOnce(t *testing.T) {
	posts := []Post{{ID: "x", Title: "Vcash", Body: "Vcash wallet"}}

	got := Filter(posts, []string{"Vcash", "wallet"}, 1, PerPage)
	assert.Equal(t, 1, got.Count)

	// Two matches of one keyword must not stand in for a missing second keyword
	got = Filter(posts, []string{"Vcash", "missing"}, 1, PerPage)
	assert.Equal(t, 0, got.Count)
}

func TestFilter_Pagination(t *testing.T) {
	posts := makePosts(7)

	tests := []struct {
		page int
		want []ID
	}{
		{1, []ID{"1", "2", "3"}},
		{2, []ID{"4", "5", "6"}},
		{3, []ID{"7"}},
		{4, []ID{}},
		{0, []ID{}},
		{-2, []ID{}},
		{math.MaxInt, []ID{}},
		{math.MinInt, []ID{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.page), func(t *testing.T) {
			got := Filter(posts, nil, tt.page, PerPage)
			assert.Equal(t, 7, got.Count, "count ignores the window")
			assert.Equal(t, tt.want, ids(got.Posts))
		})
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	posts := scenarioPosts()
	got := Filter(posts, nil, 1, PerPage)

	got.Posts[0].Title = "changed"
	assert.Equal(t, "Alpha Launch", posts[0].Title)
}

func TestIndexByID(t *testing.T) {
	posts := scenarioPosts()
	byID := IndexByID(posts)

	require.Len(t, byID, len(posts))
	for _, p := range posts {
		assert.Equal(t, p, byID[p.ID])
	}
}

func TestIndexByID_LastWriteWins(t *testing.T) {
	posts := []Post{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "other"},
		{ID: "1", Title: "second"},
	}

	byID := IndexByID(posts)
	assert.Len(t, byID, 2)
	assert.Equal(t, "second", byID["1"].Title)
}

func TestLatestFive(t *testing.T) {
	posts := makePosts(7)

	got := LatestFive(posts)

	want := []Headline{
		{ID: "1", Timestamp: 1000, Title: "Post number 1 with a long..."},
		{ID: "2", Timestamp: 1001, Title: "Post number 2 with a long..."},
		{ID: "3", Timestamp: 1002, Title: "Post number 3 with a long..."},
		{ID: "4", Timestamp: 1003, Title: "Post number 4 with a long..."},
		{ID: "5", Timestamp: 1004, Title: "Post number 5 with a long..."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headlines mismatch (-want +got):\n%s", diff)
	}
}

func TestLatestFive_FewerPosts(t *testing.T) {
	got := LatestFive(scenarioPosts())

	require.Len(t, got, 3)
	assert.Equal(t, "Alpha Launch", got[0].Title)
	assert.Empty(t, LatestFive(nil))
}

func TestPages(t *testing.T) {
	assert.Equal(t, 1, Pages(0, PerPage))
	assert.Equal(t, 1, Pages(3, PerPage))
	assert.Equal(t, 2, Pages(4, PerPage))
	assert.Equal(t, 3, Pages(7, PerPage))
}
