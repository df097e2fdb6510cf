package site

import (
	"net/url"
	"strconv"

	"github.com/roach88/vcashweb/internal/i18n"
	"github.com/roach88/vcashweb/internal/news"
)

// dateLayout formats post timestamps.
const dateLayout = "2006-01-02"

// Page is a renderable page model.
type Page interface {
	// TemplateName names the page body template.
	TemplateName() string
}

// PostView is a post prepared for display.
type PostView struct {
	ID    news.ID `json:"id"`
	Title string  `json:"title"`
	Body  string  `json:"body"`
	Date  string  `json:"date"`
}

// HeadlineView is an entry of the latest news sidebar.
type HeadlineView struct {
	ID    news.ID `json:"id"`
	Title string  `json:"title"`
	Date  string  `json:"date"`
}

// Latest is the "latest news" sidebar.
type Latest struct {
	Heading   string         `json:"heading"`
	Headlines []HeadlineView `json:"headlines"`
}

// Pager links the neighbouring pages of a listing.
type Pager struct {
	Page     int    `json:"page"`
	Pages    int    `json:"pages"`
	Label    string `json:"label"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
	PrevText string `json:"prevText"`
	NextText string `json:"nextText"`
}

// NewsPage is the news listing.
type NewsPage struct {
	Language    string     `json:"language"`
	Header      Header     `json:"header"`
	Heading     string     `json:"heading"`
	Query       string     `json:"query"`
	Placeholder string     `json:"placeholder"`
	ResultsText string     `json:"resultsText"`
	Count       int        `json:"count"`
	Posts       []PostView `json:"posts"`
	Empty       string     `json:"empty,omitempty"`
	Pager       Pager      `json:"pager"`
	Latest      Latest     `json:"latest"`
}

// TemplateName implements Page.
func (NewsPage) TemplateName() string { return "news" }

// HomePage is the landing page.
type HomePage struct {
	Language string `json:"language"`
	Header   Header `json:"header"`
	Heading  string `json:"heading"`
	Latest   Latest `json:"latest"`
}

// TemplateName implements Page.
func (HomePage) TemplateName() string { return "home" }

// SubscribedPage confirms a newsletter subscription.
type SubscribedPage struct {
	Language string `json:"language"`
	Header   Header `json:"header"`
	Heading  string `json:"heading"`
	Message  string `json:"message"`
}

// TemplateName implements Page.
func (SubscribedPage) TemplateName() string { return "subscribed" }

// BuildNewsPage snapshots the store's filtered window, pagination and latest
// headlines. The query shown in the search box is the store's raw search value.
func BuildNewsPage(st *news.Store, tr *i18n.Translator) NewsPage {
	filtered := st.Filtered()
	search := st.Search()
	page := st.Page()

	posts := make([]PostView, len(filtered.Posts))
	for i, p := range filtered.Posts {
		posts[i] = PostView{ID: p.ID, Title: p.Title, Body: p.Body, Date: p.Timestamp.Time().Format(dateLayout)}
	}

	np := NewsPage{
		Language:    tr.Language(),
		Header:      NewHeader(tr),
		Heading:     tr.T("news"),
		Query:       search.Value,
		Placeholder: tr.T("searchPlaceholder"),
		ResultsText: tr.T("results"),
		Count:       filtered.Count,
		Posts:       posts,
		Pager:       newPager(tr, page, news.Pages(filtered.Count, news.PerPage), search.Value),
		Latest:      newLatest(tr, st.LatestFive()),
	}
	if len(posts) == 0 {
		np.Empty = tr.T("noResults")
	}
	return np
}

// BuildHomePage builds the landing page from the store's latest headlines.
func BuildHomePage(st *news.Store, tr *i18n.Translator) HomePage {
	return HomePage{
		Language: tr.Language(),
		Header:   NewHeader(tr),
		Heading:  tr.T("decentralizedMoney"),
		Latest:   newLatest(tr, st.LatestFive()),
	}
}

// BuildSubscribedPage builds the newsletter confirmation page.
func BuildSubscribedPage(tr *i18n.Translator) SubscribedPage {
	return SubscribedPage{
		Language: tr.Language(),
		Header:   NewHeader(tr),
		Heading:  tr.T("subscribed"),
		Message:  tr.T("subscribedText"),
	}
}

func newLatest(tr *i18n.Translator, headlines []news.Headline) Latest {
	views := make([]HeadlineView, len(headlines))
	for i, h := range headlines {
		views[i] = HeadlineView{ID: h.ID, Title: h.Title, Date: h.Timestamp.Time().Format(dateLayout)}
	}
	return Latest{Heading: tr.T("latestNews"), Headlines: views}
}

// newPager links to the previous and next pages when they exist. Pages
// outside [1, pages] get no links.
func newPager(tr *i18n.Translator, page, pages int, query string) Pager {
	p := Pager{
		Page:     page,
		Pages:    pages,
		Label:    tr.T("page"),
		PrevText: tr.T("previous"),
		NextText: tr.T("next"),
	}
	if page > 1 && page <= pages {
		p.Previous = NewsURL(page-1, query)
	}
	if page >= 1 && page < pages {
		p.Next = NewsURL(page+1, query)
	}
	return p
}

// NewsURL returns the listing URL for page and query.
func NewsURL(page int, query string) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if query != "" {
		v.Set("q", query)
	}
	return "/news?" + v.Encode()
}
