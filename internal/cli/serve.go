package cli

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/vcashweb/internal/config"
	"github.com/roach88/vcashweb/internal/corpus"
	"github.com/roach88/vcashweb/internal/i18n"
	"github.com/roach88/vcashweb/internal/server"
	"github.com/roach88/vcashweb/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen   string
	Database string
	Seed     string

	// IDs overrides the request id generator (for testing).
	// If nil, defaults to server.UUIDv7Generator.
	IDs server.IDGenerator

	// ready, when set, receives the address once the server is configured.
	ready func(addr string)
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the news endpoint",
		Long: `Serve the Vcash site: /api/news, the translation bundles and the
server-rendered pages.

Posts come from the SQLite repository. With --seed (or the config "seed"
field) an empty repository is first filled from a YAML corpus.

Example:
  vcashweb serve --db ./vcash.db --seed ./news.yaml
  vcashweb serve --listen :8080 --config ./vcashweb.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "YAML corpus imported when the repository is empty")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) (err error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return opts.formatter(cmd).Report(err)
	}
	applyServeFlags(&cfg, opts)
	logger := opts.newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	defer func() {
		if err != nil {
			logger.Error("serve failed", "code", errCode(err), "error", err)
		}
	}()

	logger.Info("opening database", "path", cfg.Database)
	repo, err := store.Open(cfg.Database)
	if err != nil {
		return Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed != "" {
		if err := seedIfEmpty(ctx, repo, cfg.Seed, logger); err != nil {
			return err
		}
	}

	locales, translations := translationSources(cfg)
	srv, err := server.New(server.Options{
		Posts:           repo,
		Pages:           repo.Fetcher(),
		Translations:    translations,
		Locales:         locales,
		DefaultLanguage: cfg.DefaultLanguage,
		Logger:          logger,
		IDs:             opts.IDs,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to create server", err)
	}

	if opts.ready != nil {
		opts.ready(cfg.Listen)
	}
	if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}
	return nil
}

func applyServeFlags(cfg *config.Config, opts *ServeOptions) {
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Seed != "" {
		cfg.Seed = opts.Seed
	}
}

// seedIfEmpty imports the corpus at path when the repository has no posts.
func seedIfEmpty(ctx context.Context, repo *store.Store, path string, logger *slog.Logger) error {
	n, err := repo.CountPosts(ctx)
	if err != nil {
		return Fail(ExitCommandError, ErrCodeDatabase, "failed to count posts", err)
	}
	if n > 0 {
		logger.Debug("repository already populated, skipping seed", "posts", n)
		return nil
	}

	posts, err := corpus.Load(path)
	if err != nil {
		return Fail(ExitCommandError, ErrCodeCorpus, "failed to load seed corpus", err)
	}
	if err := repo.ReplacePosts(ctx, path, posts); err != nil {
		return Fail(ExitFailure, ErrCodeDatabase, "failed to seed repository", err)
	}
	logger.Info("repository seeded", "path", path, "posts", len(posts))
	return nil
}

// translationSources picks the bundles served under /static/locales and the
// loader pages bootstrap from. A wwwHost loads pages' bundles remotely; a
// localesDir replaces the embedded bundles for both.
func translationSources(cfg config.Config) (fs.FS, i18n.Loader) {
	locales := i18n.Locales()
	if cfg.LocalesDir != "" {
		locales = os.DirFS(cfg.LocalesDir)
	}
	if cfg.WWWHost != "" {
		return locales, i18n.NewHTTPLoader(cfg.WWWHost, cfg.FetchTimeout)
	}
	return locales, i18n.NewFSLoader(locales)
}
