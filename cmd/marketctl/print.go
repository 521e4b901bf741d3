package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/office-market-explorer/internal/explorer"
)

func printView(w io.Writer, v explorer.View) {
	fmt.Fprintln(w, v.Title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(v.Title))))
	fmt.Fprintf(w, "Countries:  %s\n", strings.Join(v.Options.Countries, ", "))
	fmt.Fprintf(w, "Cities:     %s\n", strings.Join(v.Options.Cities, ", "))
	fmt.Fprintf(w, "Periods:    %s\n", strings.Join(v.Options.Periods, ", "))
	if v.Options.ShowSubmarkets {
		fmt.Fprintf(w, "Submarkets: %s, %s\n", explorer.CityTotal, strings.Join(v.Options.Submarkets, ", "))
	}
	fmt.Fprintln(w)

	if v.NoData {
		fmt.Fprintln(w, "No data available for this selection.")
		return
	}
	printRows(w, "Market", v.Market)
	if len(v.Leasing) > 0 {
		fmt.Fprintln(w)
		printRows(w, "Leasing", v.Leasing)
	}
}

func printRows(w io.Writer, heading string, rows []explorer.Row) {
	fmt.Fprintln(w, heading)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r.Label, r.Value)
	}
	tw.Flush() //nolint:errcheck // writes to an in-process writer
}

func printSeries(w io.Writer, s explorer.Series) {
	fmt.Fprintf(w, "%s: %s\n", s.Label, s.Metric.Label)
	if len(s.Points) == 0 {
		fmt.Fprintln(w, "No data points.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range s.Points {
		fmt.Fprintf(tw, "%s\t%s\t\n", p.Period, p.Formatted)
	}
	tw.Flush() //nolint:errcheck // writes to an in-process writer
}

func printComparison(w io.Writer, c explorer.Comparison) {
	fmt.Fprintln(w, c.Metric.Label)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Period\t%s\t%s\t\n", c.BaseLabel, c.ComparisonLabel)
	for _, r := range c.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Period, r.BaseFormatted, r.ComparisonFormatted)
	}
	tw.Flush() //nolint:errcheck // writes to an in-process writer
}
