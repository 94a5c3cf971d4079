// Package cli implements the citeforest command-line interface.
//
// Every command starts from an empty store, loads the dataset files given
// with --data (or CITEFOREST_DATA) and then runs one query or serves the
// HTTP API. Nothing is written back: datasets are the only persistent state.
//
// # Commands
//
//   - info: counts and a short summary of the loaded data
//   - affiliations, affiliation, closest, at: affiliation queries
//   - publications, publication, after, common: publication queries
//   - graph: render the citation forest as DOT or SVG
//   - export: dump the loaded data as one dataset
//   - serve: run the HTTP API
//   - perftest: time every operation on a synthetic dataset
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context; store and cache events are forwarded to it
// at debug level.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/buildinfo"
	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/store"
)

const (
	// appName is the application name used for display and completion.
	appName = "citeforest"

	// envData lists dataset files, comma-separated.
	envData = "CITEFOREST_DATA"
	// envAddr overrides the default listen address of serve.
	envAddr = "CITEFOREST_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	dataPaths []string
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Citeforest queries affiliations and their citation forest",
		Long: `Citeforest keeps research affiliations, their publications and the
citation links between publications in memory, and answers ordering,
proximity and ancestry queries over them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), c.Logger)
			installLogHooks(c.Logger)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringSliceVarP(&c.dataPaths, "data", "d", envList(envData), "dataset files to load (.toml or .json), env "+envData)

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.affiliationsCommand())
	root.AddCommand(c.affiliationCommand())
	root.AddCommand(c.closestCommand())
	root.AddCommand(c.atCommand())
	root.AddCommand(c.publicationsCommand())
	root.AddCommand(c.publicationCommand())
	root.AddCommand(c.afterCommand())
	root.AddCommand(c.commonCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.perftestCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadStore builds a fresh store from the configured dataset files.
func (c *CLI) loadStore(ctx context.Context) (*store.Store, error) {
	logger := loggerFromContext(ctx)
	s := store.New()
	if len(c.dataPaths) == 0 {
		logger.Debug("no dataset files given, starting empty")
		return s, nil
	}

	prog := newProgress(logger)
	sets, err := dataset.LoadFiles(ctx, c.dataPaths...)
	if err != nil {
		return nil, err
	}
	st, err := dataset.ApplyAll(s, sets)
	if err != nil {
		return nil, err
	}
	prog.donef("Loaded %d affiliations, %d publications from %d file(s)", st.Affiliations, st.Publications, len(sets))
	return s, nil
}

// envList splits a comma-separated environment variable.
func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envOr returns the environment variable key, or def when it is unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
