package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/sheets"
	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/quake-damage-dashboard/internal/config"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
	"github.com/couchcryptid/quake-damage-dashboard/internal/pipeline"
)

// runner builds one report per call.
type runner interface {
	Run(ctx context.Context, filter domain.Filter) (domain.Report, error)
}

// pipelineFactory creates the runner once flags are parsed. Diagnostics go to
// stderr so stdout carries only the report.
type pipelineFactory func(ctx context.Context, stderr io.Writer) (runner, error)

// newPipeline wires the same sheet source as the dashboard, without publishing.
func newPipeline(ctx context.Context, stderr io.Writer) (runner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetricsFor(prometheus.NewRegistry())
	loader, err := sheets.NewLoader(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	return pipeline.New(loader, nil, logger, metrics), nil
}

// newLogger builds the CLI logger on w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

type filterFlags struct {
	room  string
	types []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.room, "room", "", "show only rooms containing this text")
	cmd.Flags().StringArrayVar(&f.types, "type", nil, "damage type to include (repeatable, default all)")
}

func (f *filterFlags) filter() domain.Filter {
	return domain.Filter{RoomQuery: f.room, DamageTypes: f.types}
}

func newRootCommand(build pipelineFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "report",
		Short:         "Summarize the earthquake damage survey sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSummaryCommand(build), newExportCommand(build))
	return root
}

func newSummaryCommand(build pipelineFactory) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print damage type frequencies and the most damaged rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			report, err := p.Run(cmd.Context(), flags.filter())
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCommand(build pipelineFactory) *cobra.Command {
	var (
		flags filterFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current view as an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			report, err := p.Run(cmd.Context(), flags.filter())
			if err != nil {
				return err
			}
			if err := xlsx.Save(out, report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", report.ViewCount, out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output .xlsx path")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func writeSummary(w io.Writer, report domain.Report) {
	fmt.Fprintf(w, "sheet %s: %d responses, %d damage entries, %d in view\n\n",
		report.SheetID, report.RecordCount, report.EntryCount, report.ViewCount)

	freq := tablewriter.NewWriter(w)
	freq.SetHeader([]string{"ประเภทความเสียหาย", "จำนวนที่พบ"})
	for _, row := range report.Frequencies {
		freq.Append([]string{row.DamageType, strconv.Itoa(row.Count)})
	}
	freq.Render()

	fmt.Fprintln(w)

	rooms := tablewriter.NewWriter(w)
	rooms.SetHeader([]string{"หมายเลขห้อง", "จำนวนความเสียหาย"})
	for _, row := range report.TopRooms {
		rooms.Append([]string{row.Room, strconv.Itoa(row.Count)})
	}
	rooms.Render()
}
