package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vcashweb/internal/corpus"
	"github.com/roach88/vcashweb/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult is the JSON payload of a successful import.
type ImportResult struct {
	Source   string `json:"source"`
	Database string `json:"database"`
	Posts    int    `json:"posts"`
}

// String renders the text form of the result.
func (r ImportResult) String() string {
	return fmt.Sprintf("Imported %d posts from %s into %s", r.Posts, r.Source, r.Database)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <corpus.yaml>",
		Short: "Replace the repository with a YAML news corpus",
		Long: `Replace every post in the SQLite repository with the posts of a YAML
corpus, keeping their order.

Example:
  vcashweb import --db ./vcash.db ./news.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return out.Report(err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	posts, err := corpus.Load(path)
	if err != nil {
		return out.Report(Fail(ExitCommandError, ErrCodeCorpus, "failed to load corpus", err))
	}
	out.VerboseLog("parsed %d posts from %s", len(posts), path)

	repo, err := store.Open(cfg.Database)
	if err != nil {
		return out.Report(Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err))
	}
	defer repo.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := repo.ReplacePosts(ctx, path, posts); err != nil {
		return out.Report(Fail(ExitFailure, ErrCodeDatabase, "failed to import posts", err))
	}

	return out.Success(ImportResult{Source: path, Database: cfg.Database, Posts: len(posts)})
}
