package main

import (
	"fmt"
	"text/tabwriter"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bessel2/projection"
)

// evalResult is one line of eval output.
type evalResult struct {
	Kind   string   `json:"kind"`
	L      int      `json:"L"`
	Ell    int      `json:"ell"`
	M      int      `json:"m"`
	X      float64  `json:"x"`
	J      float64  `json:"J"`
	Direct *float64 `json:"direct,omitempty"`
}

func newEvalCmd(g *globalFlags) *cobra.Command {
	var (
		kindName string
		L, l, m  int
		xs       []float64
		direct   bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate J_Llm at the given points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := projection.ParseKind(kindName)
			if err != nil {
				return err
			}
			tables, logger, err := g.tabulate(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			defer tables.Free()

			results := make([]evalResult, 0, len(xs))
			for _, x := range xs {
				v, err := tables.JAt(kind, L, l, m, x)
				if err != nil {
					return err
				}
				r := evalResult{Kind: kind.String(), L: L, Ell: l, M: m, X: x, J: v}
				if direct {
					d, err := projection.Direct(kind, L, l, m, x)
					if err != nil {
						return err
					}
					r.Direct = &d
				}
				results = append(results, r)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := gojson.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			if direct {
				fmt.Fprintln(tw, "x\tJ\tdirect")
			} else {
				fmt.Fprintln(tw, "x\tJ")
			}
			for _, r := range results {
				if r.Direct != nil {
					fmt.Fprintf(tw, "%g\t%.12g\t%.12g\n", r.X, r.J, *r.Direct)
					continue
				}
				fmt.Fprintf(tw, "%g\t%.12g\n", r.X, r.J)
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&kindName, "type", "TT", "projection function (TT, EE, EB)")
	f.IntVar(&L, "L", 0, "outer multipole L")
	f.IntVar(&l, "l", 0, "primary multipole l")
	f.IntVar(&m, "m", 0, "azimuthal number m")
	f.Float64SliceVar(&xs, "x", nil, "evaluation points")
	f.BoolVar(&direct, "direct", false, "also print the direct summation")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}
