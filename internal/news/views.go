package news

import (
	"strings"

	"github.com/roach88/vcashweb/internal/textutil"
)

const (
	// PerPage is the number of posts shown per page.
	PerPage = 3

	// LatestCount is the number of headlines in the latest-news projection.
	LatestCount = 5

	// HeadlineLength is the display length of a headline title.
	HeadlineLength = 25
)

// Filtered is a page of the search working set.
type Filtered struct {
	// Count is the size of the working set before pagination.
	Count int `json:"count"`

	// Posts is the current page window of the working set.
	Posts []Post `json:"posts"`
}

// Tokenize splits raw search text into non-empty whitespace-delimited
// keywords. Empty or whitespace-only input yields no keywords.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

// IndexByID folds posts left to right into a map. When two posts share an
// id, the later one wins.
func IndexByID(posts []Post) map[ID]Post {
	byID := make(map[ID]Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	return byID
}

// Matches reports whether every keyword occurs in the post's title or body.
//
// Matching is case-sensitive substring containment. A keyword found in both
// fields counts once. No keywords always matches.
func Matches(p Post, keywords []string) bool {
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(p.Body, keyword) || strings.Contains(p.Title, keyword) {
			matched++
		}
	}
	return matched == len(keywords)
}

// Window returns the [start, end) slice bounds of a page before clamping.
//
// Page 1 is [0, perPage); page N is [(N-1)*perPage, (N-1)*perPage+perPage).
// Both branches currently produce the same bounds.
func Window(page, perPage int) (start, end int) {
	if page == 1 {
		return 0, perPage
	}
	start = (page - 1) * perPage
	return start, start + perPage
}

// Filter applies keywords to posts and cuts the page window.
//
// The working set keeps the relative order of posts. Windows reaching past the
// working set are shortened; windows entirely outside it (including pages
// below 1) are empty. Posts is never nil.
func Filter(posts []Post, keywords []string, page, perPage int) Filtered {
	working := posts
	if len(keywords) != 0 {
		working = make([]Post, 0, len(posts))
		for _, p := range posts {
			if Matches(p, keywords) {
				working = append(working, p)
			}
		}
	}

	if page < 1 || (perPage > 0 && page-1 > len(working)/perPage) {
		return Filtered{Count: len(working), Posts: []Post{}}
	}

	start, end := Window(page, perPage)
	start = clamp(start, 0, len(working))
	end = clamp(end, start, len(working))

	window := make([]Post, end-start)
	copy(window, working[start:end])
	return Filtered{Count: len(working), Posts: window}
}

// LatestFive projects the first LatestCount posts in stored order into
// headlines with shortened titles.
func LatestFive(posts []Post) []Headline {
	n := min(len(posts), LatestCount)
	headlines := make([]Headline, 0, n)
	for _, p := range posts[:n] {
		headlines = append(headlines, Headline{
			ID:        p.ID,
			Timestamp: p.Timestamp,
			Title:     textutil.Shorten(p.Title, HeadlineLength),
		})
	}
	return headlines
}

// Pages returns how many pages count posts span, at least 1.
func Pages(count, perPage int) int {
	if perPage <= 0 || count <= perPage {
		return 1
	}
	return (count + perPage - 1) / perPage
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
