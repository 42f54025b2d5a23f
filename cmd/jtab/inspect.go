package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarise a file written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := readDocument(f, strings.HasSuffix(args[0], ".zst"))
			if err != nil {
				return err
			}
			stored := 0
			for _, s := range doc.Bessel {
				stored += len(s.Values)
			}
			for _, s := range doc.J {
				stored += len(s.Values)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "xx_size\t%d\n", doc.XXSize)
			fmt.Fprintf(tw, "xx_max\t%g\n", doc.XXMax)
			fmt.Fprintf(tw, "l1_size\t%d\n", len(doc.L1))
			fmt.Fprintf(tw, "bessel slots\t%d\n", len(doc.Bessel))
			fmt.Fprintf(tw, "J slots\t%d\n", len(doc.J))
			fmt.Fprintf(tw, "samples\t%d\n", stored)
			return tw.Flush()
		},
	}
}
