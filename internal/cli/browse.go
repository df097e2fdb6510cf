package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/roach88/vcashweb/internal/news"
)

// BrowseOptions holds flags for the browse command.
type BrowseOptions struct {
	*RootOptions
	URL string
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BrowseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the news interactively",
		Long: `Open an interactive session over the news endpoint.

The session fetches the posts once, then pages and searches them locally.
Searches commit after the configured search delay (default 1s); the listing
is re-printed whenever the page, the posts or the committed keywords change.

Example:
  vcashweb browse --url http://localhost:3000/api/news`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "news endpoint (overrides config newsURL)")

	return cmd
}

func runBrowse(opts *BrowseOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return opts.formatter(cmd).Report(err)
	}
	if opts.URL != "" {
		cfg.NewsURL = opts.URL
	}
	logger := opts.newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := news.New(ctx, news.NewHTTPFetcher(cfg.NewsURL, cfg.FetchTimeout),
		news.WithSearchDelay(cfg.SearchDelay),
		news.WithLogger(logger),
	)
	out := cmd.OutOrStdout()
	session := NewSession(st, out)
	defer session.Close()

	fmt.Fprintf(out, "vcashweb browse - %s\n", cfg.NewsURL)
	fmt.Fprintln(out, "Type 'help' for available commands.")

	select {
	case <-st.Ready():
	case <-ctx.Done():
		return nil
	}
	session.Render()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	for {
		input, err := line.Prompt("vcash> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "Bye!")
				return nil
			}
			logger.Error("failed to read input", "error", err)
			return WrapExitError(ExitFailure, "reading input", err)
		}
		if input != "" {
			line.AppendHistory(input)
		}
		if session.Exec(input) {
			fmt.Fprintln(out, "Bye!")
			return nil
		}
	}
}
