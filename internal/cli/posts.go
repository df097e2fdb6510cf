package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vcashweb/internal/news"
	"github.com/roach88/vcashweb/internal/store"
)

// PostsOptions holds flags for the posts command and its subcommands.
type PostsOptions struct {
	*RootOptions
	Database string
	Imports  bool
}

// postList prints one post per line in text mode.
type postList []news.Post

func (l postList) lines() []string {
	out := make([]string, len(l))
	for i, p := range l {
		out[i] = fmt.Sprintf("%-8s %s  %s", p.ID, p.Timestamp.Time().Format("2006-01-02"), p.Title)
	}
	return out
}

func (postList) emptyText() string { return "No posts." }

// importList prints the import history in text mode.
type importList []store.Import

func (l importList) lines() []string {
	out := make([]string, len(l))
	for i, imp := range l {
		out[i] = fmt.Sprintf("#%-3d %s  %3d posts  %s", imp.Seq, imp.ImportedAt.Format("2006-01-02 15:04:05"), imp.PostCount, imp.Source)
	}
	return out
}

func (importList) emptyText() string { return "No imports." }

// postDetail prints a single post in text mode.
type postDetail news.Post

func (p postDetail) String() string {
	return fmt.Sprintf("%s\nid: %s\ndate: %s\n\n%s",
		p.Title, p.ID, p.Timestamp.Time().Format("2006-01-02"), p.Body)
}

// NewPostsCommand creates the posts command.
func NewPostsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PostsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List the posts in the repository",
		Long: `List every post in the SQLite repository in serving order.

With --imports, list the import history instead.

Example:
  vcashweb posts --db ./vcash.db
  vcashweb posts --db ./vcash.db --format json
  vcashweb posts --db ./vcash.db --imports
  vcashweb posts show --db ./vcash.db 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosts(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.Flags().BoolVar(&opts.Imports, "imports", false, "list the import history")

	cmd.AddCommand(newPostsShowCommand(opts))

	return cmd
}

func newPostsShowCommand(opts *PostsOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one post",
		Long: `Print the post with the given id. When several posts share the id,
the last one imported is shown.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostsShow(opts, news.ID(args[0]), cmd)
		},
	}
}

// openRepository loads config and opens the repository, reporting failures.
func (o *PostsOptions) openRepository(out *OutputFormatter) (*store.Store, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, out.Report(err)
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}

	repo, err := store.Open(cfg.Database)
	if err != nil {
		return nil, out.Report(Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err))
	}
	return repo, nil
}

func runPosts(opts *PostsOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	repo, err := opts.openRepository(out)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Imports {
		imports, err := repo.ListImports(ctx)
		if err != nil {
			return out.Report(Fail(ExitFailure, ErrCodeDatabase, "failed to list imports", err))
		}
		if out.Format == "json" {
			return out.Success(imports)
		}
		return out.Success(importList(imports))
	}

	posts, err := repo.ListPosts(ctx)
	if err != nil {
		return out.Report(Fail(ExitFailure, ErrCodeDatabase, "failed to list posts", err))
	}
	if out.Format == "json" {
		return out.Success(posts)
	}
	return out.Success(postList(posts))
}

func runPostsShow(opts *PostsOptions, id news.ID, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	repo, err := opts.openRepository(out)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	post, err := repo.GetPost(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return out.Report(Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("post %s not found", id), nil))
	case err != nil:
		return out.Report(Fail(ExitFailure, ErrCodeDatabase, "failed to read post", err))
	}

	if out.Format == "json" {
		return out.Success(post)
	}
	return out.Success(postDetail(post))
}
