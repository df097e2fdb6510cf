package server

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roach88/vcashweb/internal/i18n"
	"github.com/roach88/vcashweb/internal/news"
	"github.com/roach88/vcashweb/internal/schedule"
	"github.com/roach88/vcashweb/internal/site"
)

const (
	messageNotFound     = "not found"
	messageListFailed   = "failed to list posts"
	messageRenderFailed = "failed to render page"
)

// pageNamespaces are the translation bundles every page loads.
var pageNamespaces = []string{i18n.DefaultNamespace}

type errorResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// GET /healthz
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// GET /api/news returns the whole corpus as a JSON array, in stored order.
func (s *Server) listNews(c *gin.Context) {
	posts, err := s.posts.ListPosts(c.Request.Context())
	if err != nil {
		s.log.Error("failed to list posts", "id", RequestID(c), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: messageListFailed})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GET /static/locales/:lang/:file serves one translation bundle.
func (s *Server) localeBundle(c *gin.Context) {
	file := c.Param("file")
	ns, ok := strings.CutSuffix(file, ".json")
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Message: messageNotFound})
		return
	}
	p, err := i18n.BundlePath(c.Param("lang"), ns)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Message: messageNotFound})
		return
	}
	data, err := fs.ReadFile(s.locales, p)
	if errors.Is(err, fs.ErrNotExist) {
		c.JSON(http.StatusNotFound, errorResponse{Message: messageNotFound})
		return
	}
	if err != nil {
		s.log.Error("failed to read translation bundle", "id", RequestID(c), "path", p, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: messageNotFound})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// GET /
func (s *Server) homePage(c *gin.Context) {
	st, ok := s.pageStore(c)
	if !ok {
		return
	}
	s.render(c, site.BuildHomePage(st, s.translator(c)))
}

// GET /news?page=&q=
//
// The query is applied before the page: a search commit resets the page to 1,
// so applying it afterwards would discard the requested page.
func (s *Server) newsPage(c *gin.Context) {
	st, ok := s.pageStore(c)
	if !ok {
		return
	}
	if q := c.Query("q"); q != "" {
		st.SetSearch(q)
	}
	st.SetPage(parsePage(c.Query("page")))
	s.render(c, site.BuildNewsPage(st, s.translator(c)))
}

// GET /subscribed
func (s *Server) subscribedPage(c *gin.Context) {
	s.render(c, site.BuildSubscribedPage(s.translator(c)))
}

// pageStore builds the request's news store and waits for its fetch.
// Searches commit synchronously so one request renders one consistent state.
func (s *Server) pageStore(c *gin.Context) (*news.Store, bool) {
	ctx := c.Request.Context()
	st := news.New(ctx, s.pages,
		news.WithScheduler(schedule.Immediate{}),
		news.WithLogger(s.log.With("id", RequestID(c))),
	)
	select {
	case <-st.Ready():
		return st, true
	case <-ctx.Done():
		c.Status(http.StatusServiceUnavailable)
		return nil, false
	}
}

func (s *Server) translator(c *gin.Context) *i18n.Translator {
	lang := i18n.ResolveLanguage(c.Request, s.defaultLang)
	return i18n.Bootstrap(c.Request.Context(), s.translations, lang, pageNamespaces, s.log.With("id", RequestID(c)))
}

func (s *Server) render(c *gin.Context, page site.Page) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.renderer.Render(c.Writer, page); err != nil {
		s.log.Error(messageRenderFailed, "id", RequestID(c), "page", page.TemplateName(), "error", err)
		c.String(http.StatusInternalServerError, messageRenderFailed)
	}
}

// parsePage reads the page query parameter. Missing or non-numeric values
// mean page 1; other values pass through unclamped.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
