// Package site renders the server-side pages: a shared layout with the
// translated header, the news listing, the home page and the newsletter
// confirmation page.
//
// Rendering is two steps. Build* functions turn a news.Store and a
// translator into a plain page model; Render executes the page's template
// against that model. Page models carry every string the template prints, so
// they can be compared as JSON in tests.
package site
