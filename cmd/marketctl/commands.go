package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/couchcryptid/office-market-explorer/internal/adapter/source"
	"github.com/couchcryptid/office-market-explorer/internal/domain"
	"github.com/couchcryptid/office-market-explorer/internal/explorer"
	"github.com/couchcryptid/office-market-explorer/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"
)

const defaultDatasetPath = "data/mock/market_data.json"

// metrics are registered once per process however many commands run.
var metrics = sync.OnceValue(observability.NewMetrics)

func newRootCmd() *cobra.Command {
	var file string

	rootCmd := &cobra.Command{
		Use:          "marketctl",
		Short:        "Explore office-market data by country, city, period and submarket",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&file, "file", "f",
		sharedcfg.EnvOrDefault("DATASET_PATH", defaultDatasetPath), "dataset JSON file")

	rootCmd.AddCommand(viewCmd(&file))
	rootCmd.AddCommand(trendCmd(&file))
	rootCmd.AddCommand(compareCmd(&file))
	rootCmd.AddCommand(validateCmd(&file))
	return rootCmd
}

func viewCmd(file *string) *cobra.Command {
	var sel domain.Selection

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the market and leasing tables for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exp, err := openExplorer(cmd, *file)
			if err != nil {
				return err
			}
			v, err := exp.View(sel)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.Country, "country", "", "country (default: first in the dataset)")
	cmd.Flags().StringVar(&sel.City, "city", "", "city (default: first in the country)")
	cmd.Flags().StringVar(&sel.Period, "period", "", `period label such as "Q1 2024" (default: earliest)`)
	cmd.Flags().StringVar(&sel.Submarket, "submarket", "", "submarket (default: city total)")
	return cmd
}

func trendCmd(file *string) *cobra.Command {
	var ref explorer.SeriesRef
	var metric string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Print one metric across all periods of a city or submarket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := domain.ParseMetric(metric)
			if err != nil {
				return err
			}
			exp, err := openExplorer(cmd, *file)
			if err != nil {
				return err
			}
			ref, err = defaultRef(exp, ref)
			if err != nil {
				return err
			}
			series, err := exp.Trend(ref, m)
			if err != nil {
				return err
			}
			printSeries(cmd.OutOrStdout(), series)
			return nil
		},
	}

	seriesFlags(cmd, &ref, "")
	cmd.Flags().StringVarP(&metric, "metric", "m", string(domain.PrimeRent), "metric to chart")
	return cmd
}

func compareCmd(file *string) *cobra.Command {
	var base, other explorer.SeriesRef
	var metric string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Align one metric of two cities or submarkets period by period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := domain.ParseMetric(metric)
			if err != nil {
				return err
			}
			if other.City == "" {
				return errors.New("--with-city is required")
			}
			exp, err := openExplorer(cmd, *file)
			if err != nil {
				return err
			}
			base, err = defaultRef(exp, base)
			if err != nil {
				return err
			}
			if other.Country == "" {
				other.Country = base.Country
			}
			cmp, err := exp.Compare(base, other, m)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), cmp)
			return nil
		},
	}

	seriesFlags(cmd, &base, "")
	seriesFlags(cmd, &other, "with-")
	cmd.Flags().StringVarP(&metric, "metric", "m", string(domain.PrimeRent), "metric to compare")
	return cmd
}

func validateCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check period labels, numeric fields and percent scales of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := source.NewFileSource(*file).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			if !runValidation(cmd.OutOrStdout(), d) {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}

func seriesFlags(cmd *cobra.Command, ref *explorer.SeriesRef, prefix string) {
	cmd.Flags().StringVar(&ref.Country, prefix+"country", "", "country")
	cmd.Flags().StringVar(&ref.City, prefix+"city", "", "city")
	cmd.Flags().StringVar(&ref.Submarket, prefix+"submarket", "", "submarket (default: city total)")
}

// defaultRef fills an empty country or city the way the selectors would.
func defaultRef(exp *explorer.Explorer, ref explorer.SeriesRef) (explorer.SeriesRef, error) {
	if ref.Country != "" && ref.City != "" {
		return ref, nil
	}
	v, err := exp.View(domain.Selection{Country: ref.Country, City: ref.City})
	if err != nil {
		return ref, err
	}
	ref.Country, ref.City = v.Selection.Country, v.Selection.City
	return ref, nil
}

func openExplorer(cmd *cobra.Command, path string) (*explorer.Explorer, error) {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	exp := explorer.New(source.NewFileSource(path), nil, logger, metrics(), 64)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := exp.Load(ctx); err != nil {
		return nil, err
	}
	return exp, nil
}
