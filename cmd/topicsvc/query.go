package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deppfellow/topicsvc/internal/config"
	"github.com/deppfellow/topicsvc/internal/lib/utils"
	"github.com/deppfellow/topicsvc/internal/model"
	"github.com/deppfellow/topicsvc/internal/repository"
	"github.com/deppfellow/topicsvc/internal/server"
	"github.com/deppfellow/topicsvc/internal/service"
)

type queryOptions struct {
	search   string
	sort     string
	dataFile string
	pretty   bool
}

func newQueryCmd(fs afero.Fs) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one topic query and print the JSON result",
		Long: `Run the same validate, load, filter, sort and project pipeline as
GET /api/topics once and print the result to stdout.

Examples:
  topicsvc query                         # every topic in store order
  topicsvc query --search go --sort name
  topicsvc query --search ""             # fails: Invalid search query`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, fs, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&opts.sort, "sort", "", `ordering, only "name" has an effect`)
	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "topic store file (overrides TOPICS_STORE_PATH)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the output")

	return cmd
}

func runQuery(cmd *cobra.Command, fs afero.Fs, opts *queryOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.dataFile != "" {
		cfg.Store.Path = opts.dataFile
	}

	q := &model.ListTopicsQuery{Sort: opts.sort}
	// A given but empty --search is as invalid as ?search=.
	if cmd.Flags().Changed("search") {
		q.Search = &opts.search
	}
	if err := q.Validate(); err != nil {
		return err
	}

	log := zerolog.New(cmd.ErrOrStderr()).Level(zerolog.WarnLevel)

	srv, err := server.New(cfg, &log, nil, server.WithFs(fs))
	if err != nil {
		return err
	}

	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		return err
	}

	topics, err := services.Topics.List(cmd.Context(), q)
	if err != nil {
		return err
	}

	return utils.WriteJSON(cmd.OutOrStdout(), topics, opts.pretty)
}
