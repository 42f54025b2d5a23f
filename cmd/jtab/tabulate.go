package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cwbudde/algo-bessel2/projection"
)

func newTabulateCmd(g *globalFlags) *cobra.Command {
	var (
		metrics bool
		trace   bool
		slots   bool
	)
	cmd := &cobra.Command{
		Use:   "tabulate",
		Short: "Fill both tables and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			var opts []projection.Option

			reg := prometheus.NewRegistry()
			if metrics {
				opts = append(opts, projection.WithRegisterer(reg))
			}
			if trace {
				exporter, err := stdouttrace.New(
					stdouttrace.WithWriter(cmd.ErrOrStderr()),
					stdouttrace.WithPrettyPrint(),
				)
				if err != nil {
					return fmt.Errorf("create trace exporter: %w", err)
				}
				tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
				defer func() { _ = tp.Shutdown(context.Background()) }()
				opts = append(opts, projection.WithTracerProvider(tp))
			}

			tables, logger, err := g.tabulate(cmd, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			defer tables.Free()

			printSummary(out, tables)
			if slots {
				printSlots(out, tables)
			}
			if metrics {
				return printMetrics(out, reg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print the table metrics")
	cmd.Flags().BoolVar(&trace, "trace", false, "write tabulation spans to stderr")
	cmd.Flags().BoolVar(&slots, "slots", false, "list every projection-function slot")
	return cmd
}

func printSummary(w io.Writer, t *projection.Tables) {
	cfg := t.Config()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "xx_size\t%d\n", t.Grid().Size())
	fmt.Fprintf(tw, "xx_max\t%g\n", t.Grid().Max())
	fmt.Fprintf(tw, "xx_step\t%g\n", t.Grid().Step())
	fmt.Fprintf(tw, "l1_size\t%d\n", t.L1().Len())
	fmt.Fprintf(tw, "l1_max\t%d\n", t.L1().Max())
	fmt.Fprintf(tw, "L\t%s\n", formatInts(cfg.L))
	fmt.Fprintf(tw, "l\t%s\n", formatInts(cfg.Multipoles))
	fmt.Fprintf(tw, "m\t%s\n", formatInts(cfg.M))
	fmt.Fprintf(tw, "kinds\t%v\n", t.Kinds())
	fmt.Fprintf(tw, "doubles\t%d\n", t.CountAllocated())
	fmt.Fprintf(tw, "x_size_max\t%d\n", t.XSizeMax())
	_ = tw.Flush()
}

func printSlots(w io.Writer, t *projection.Tables) {
	cfg := t.Config()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Kind\tL\tl\tm\tx_min\tx_size\tpeak")
	for _, kind := range t.Kinds() {
		for iL, L := range cfg.L {
			for il, l := range cfg.Multipoles {
				for im, m := range cfg.M {
					s, err := t.Slot(kind, iL, il, im)
					if err != nil {
						continue
					}
					if s.Empty() {
						fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t-\t0\t0\n", kind, L, l, m)
						continue
					}
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%g\t%d\t%.3e\n", kind, L, l, m, s.XMin(), s.XSize(), s.Peak())
				}
			}
		}
	}
	_ = tw.Flush()
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tLabels\tValue")
	for _, f := range families {
		for _, m := range f.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += lp.GetName() + "=" + lp.GetValue()
			}
			var value float64
			switch {
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = m.GetHistogram().GetSampleSum()
			}
			fmt.Fprintf(tw, "%s\t%s\t%g\n", f.GetName(), labels, value)
		}
	}
	return tw.Flush()
}
