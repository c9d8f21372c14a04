// Command topicsvc serves and queries a static collection of topics.
package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. fs is where query reads the store.
//
// Running topicsvc without a subcommand is the same as topicsvc serve.
func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &serveOptions{}

	rootCmd := &cobra.Command{
		Use:   "topicsvc",
		Short: "Topic query service",
		Long: `topicsvc answers read-only queries over a static JSON or YAML topic file.

Configuration is read from TOPICS_* environment variables (and a .env file).
Flags override the matching variables.

Examples:
  topicsvc                                  # same as "topicsvc serve"
  topicsvc serve --port 8080 --data-file data/topics.yaml
  topicsvc query --search go --sort name`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	opts.bind(rootCmd)

	rootCmd.AddCommand(newServeCmd(), newQueryCmd(fs))

	return rootCmd
}
