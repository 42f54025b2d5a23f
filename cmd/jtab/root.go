package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-bessel2/internal/config"
	"github.com/cwbudde/algo-bessel2/internal/logging"
	"github.com/cwbudde/algo-bessel2/projection"
)

// globalFlags override the configuration file when set explicitly.
type globalFlags struct {
	configFile string
	logLevel   string
	verbose    bool

	xxMax   float64
	xxStep  float64
	lMax    int
	ls      []int
	ms      []int
	types   []string
	workers int
	extend  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "jtab",
		Short:         "Tabulate second-order projection functions J_Llm(x)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log the phase summaries at info level")
	pf.Float64Var(&g.xxMax, "xx-max", 0, "upper end of the x grid")
	pf.Float64Var(&g.xxStep, "xx-step", 0, "x grid spacing")
	pf.IntVar(&g.lMax, "l-max", 0, "largest outer multipole L")
	pf.IntSliceVar(&g.ls, "l-list", nil, "primary multipoles l")
	pf.IntSliceVar(&g.ms, "m-list", nil, "azimuthal numbers m")
	pf.StringSliceVar(&g.types, "types", nil, "projection functions to tabulate (TT, EE, EB)")
	pf.IntVar(&g.workers, "workers", 0, "fill goroutines, 0 for GOMAXPROCS")
	pf.BoolVar(&g.extend, "extend-l1", false, "widen the l1 range by max m")

	root.AddCommand(
		newTabulateCmd(g),
		newEvalCmd(g),
		newExportCmd(g),
		newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

// settings merges the configuration file with the flags that were set.
func (g *globalFlags) settings(cmd *cobra.Command) (config.Tabulation, error) {
	t, err := config.LoadTabulation(g.configFile)
	if err != nil {
		return config.Tabulation{}, err
	}
	p := &t.Projection
	flags := cmd.Flags()
	if flags.Changed("xx-max") {
		p.XXMax = g.xxMax
	}
	if flags.Changed("xx-step") {
		p.XXStep = g.xxStep
	}
	if flags.Changed("l-max") {
		p.LMax = g.lMax
	}
	if flags.Changed("l-list") {
		p.Multipoles = g.ls
	}
	if flags.Changed("m-list") {
		p.M = g.ms
	}
	if flags.Changed("workers") {
		p.Workers = g.workers
	}
	if flags.Changed("extend-l1") {
		p.ExtendL1UsingM = g.extend
	}
	if flags.Changed("verbose") {
		p.Verbose = g.verbose
	}
	if flags.Changed("types") {
		p.HasTT, p.HasEE, p.HasEB = false, false, false
		for _, s := range g.types {
			kind, err := projection.ParseKind(s)
			if err != nil {
				return config.Tabulation{}, err
			}
			switch kind {
			case projection.TT:
				p.HasTT = true
			case projection.EE:
				p.HasEE = true
			case projection.EB:
				p.HasEB = true
			}
		}
	}
	if flags.Changed("log-level") {
		t.Log.Level = g.logLevel
	}
	return t, nil
}

// tabulate builds the logger and runs projection.Init with the merged
// settings.
func (g *globalFlags) tabulate(cmd *cobra.Command, opts ...projection.Option) (*projection.Tables, *zap.Logger, error) {
	t, err := g.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Config{
		Level:       t.Log.Level,
		Encoding:    t.Log.Encoding,
		Development: t.Log.Development,
		OutputPaths: t.Log.OutputPaths,
	})
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tables, err := projection.Init(ctx, t.Projection, append([]projection.Option{projection.WithLogger(logger)}, opts...)...)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return tables, logger, nil
}

func formatInts(v []int) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ",")
}
