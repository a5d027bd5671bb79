// Package report renders workload results for the terminal.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"jsouthworth.net/go/ordered/internal/workload"
)

// Options control rendering.
type Options struct {
	// Color enables ANSI colouring of the validity column.
	Color bool
	// Title is printed above the table when set.
	Title string
}

// Render writes results as a table to w.
func Render(w io.Writer, results []workload.Result, opts Options) error {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	if !opts.Color {
		ok.DisableColor()
		bad.DisableColor()
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	if opts.Title != "" {
		tbl.SetTitle(opts.Title)
	}

	tbl.AppendHeader(table.Row{"Variant", "Ops", "Size", "Height", "Not found", "Duration", "Rate", "Valid"})

	var totalOps int
	for _, res := range results {
		totalOps += res.Ops
		valid := ok.Sprint("yes")
		if !res.Valid() {
			valid = bad.Sprint("no")
		}
		tbl.AppendRow(table.Row{
			res.Variant,
			humanize.Comma(int64(res.Ops)),
			humanize.Comma(int64(res.Size)),
			res.Height,
			humanize.Comma(int64(res.Outcomes[workload.OutcomeNotFound])),
			res.Duration.Round(time.Microsecond),
			rate(res.Ops, res.Duration),
			valid,
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d runs", len(results)), humanize.Comma(int64(totalOps))})

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	for _, res := range results {
		if res.Valid() {
			continue
		}
		if _, err := bad.Fprintf(w, "%s: %v\n", res.Variant, res.Invalid); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}
	return nil
}

func rate(ops int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return humanize.SIWithDigits(float64(ops)/d.Seconds(), 1, "op/s")
}
