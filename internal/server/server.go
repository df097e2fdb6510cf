// Package server is the HTTP surface of the site: the news endpoint, the
// translation bundles and the server-rendered pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/vcashweb/internal/i18n"
	"github.com/roach88/vcashweb/internal/news"
	"github.com/roach88/vcashweb/internal/site"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// PostSource lists the corpus served by /api/news.
type PostSource interface {
	ListPosts(ctx context.Context) ([]news.Post, error)
}

// Options configures a Server.
type Options struct {
	// Posts backs /api/news. Required.
	Posts PostSource

	// Pages is what every page store fetches from.
	// Default: a FetcherFunc over Posts.ListPosts.
	Pages news.Fetcher

	// Translations loads bundles for page bootstrap.
	// Default: an FSLoader over Locales.
	Translations i18n.Loader

	// Locales is served under /static/locales. Default: the embedded bundles.
	Locales fs.FS

	// DefaultLanguage applies when the language cookie is missing or invalid.
	DefaultLanguage string

	// Logger for request and failure logs. Falls back to slog.Default().
	Logger *slog.Logger

	// IDs generates request ids. Default: UUIDv7Generator.
	IDs IDGenerator
}

// Server holds the router and its collaborators.
//
// Thread-safety: handlers share only immutable state; every page request
// builds its own news store.
type Server struct {
	posts        PostSource
	pages        news.Fetcher
	translations i18n.Loader
	locales      fs.FS
	defaultLang  string
	renderer     *site.Renderer
	log          *slog.Logger
	router       *gin.Engine
}

// New creates a server and registers its routes.
func New(opts Options) (*Server, error) {
	if opts.Posts == nil {
		return nil, errors.New("server: post source is required")
	}
	renderer, err := site.NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		posts:        opts.Posts,
		pages:        opts.Pages,
		translations: opts.Translations,
		locales:      opts.Locales,
		defaultLang:  opts.DefaultLanguage,
		renderer:     renderer,
		log:          opts.Logger,
	}
	if s.pages == nil {
		s.pages = news.FetcherFunc(opts.Posts.ListPosts)
	}
	if s.locales == nil {
		s.locales = i18n.Locales()
	}
	if s.translations == nil {
		s.translations = i18n.NewFSLoader(s.locales)
	}
	if s.defaultLang == "" {
		s.defaultLang = i18n.DefaultLanguage
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.WithGroup("http")
	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	s.router = s.newRouter(ids)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter(ids IDGenerator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log, ids))

	router.GET("/healthz", s.healthz)
	router.GET("/api/news", s.listNews)
	router.GET("/static/locales/:lang/:file", s.localeBundle)
	router.GET("/", s.homePage)
	router.GET("/news", s.newsPage)
	router.GET("/subscribed", s.subscribedPage)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Message: messageNotFound})
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
