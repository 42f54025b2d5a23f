package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bessel2/projection"
)

// document is the export layout. Slots list only their stored samples;
// everything outside [x_min, x_min+(x_size-1)*xx_step] is zero.
type document struct {
	XXMax  float64     `json:"xx_max"`
	XXStep float64     `json:"xx_step"`
	XXSize int         `json:"xx_size"`
	L1     []int       `json:"l1"`
	Bessel []slotEntry `json:"bessel"`
	J      []slotEntry `json:"J"`
}

type slotEntry struct {
	Kind      string    `json:"kind,omitempty"`
	L         *int      `json:"L,omitempty"`
	Ell       int       `json:"ell"`
	M         *int      `json:"m,omitempty"`
	IndexXMin int       `json:"index_x_min"`
	XMin      float64   `json:"x_min"`
	Values    []float64 `json:"values"`
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		out        string
		skipBessel bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored tables as JSON, zstd-compressed for *.zst",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, logger, err := g.tabulate(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			defer tables.Free()

			doc, err := buildDocument(tables, !skipBessel)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return writeDocument(cmd.OutOrStdout(), doc, false)
			}
			f, err := os.Create(out) //nolint:gosec // path is chosen by the user
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := writeDocument(f, doc, strings.HasSuffix(out, ".zst")); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&skipBessel, "skip-bessel", false, "omit the Bessel table")
	return cmd
}

func buildDocument(t *projection.Tables, withBessel bool) (*document, error) {
	cfg := t.Config()
	doc := &document{
		XXMax:  t.Grid().Max(),
		XXStep: t.Grid().Step(),
		XXSize: t.Grid().Size(),
		L1:     t.L1().Values(),
	}
	if withBessel {
		for i := range t.L1().Len() {
			s, err := t.BesselSlot(i)
			if err != nil {
				return nil, err
			}
			if s.Empty() {
				continue
			}
			doc.Bessel = append(doc.Bessel, slotEntry{
				Ell:       t.L1().Value(i),
				IndexXMin: s.IndexXMin(),
				XMin:      s.XMin(),
				Values:    s.Values(),
			})
		}
	}
	for _, kind := range t.Kinds() {
		for iL, L := range cfg.L {
			for il, l := range cfg.Multipoles {
				for im, m := range cfg.M {
					s, err := t.Slot(kind, iL, il, im)
					if err != nil {
						return nil, err
					}
					if s.Empty() {
						continue
					}
					doc.J = append(doc.J, slotEntry{
						Kind:      kind.String(),
						L:         &L,
						Ell:       l,
						M:         &m,
						IndexXMin: s.IndexXMin(),
						XMin:      s.XMin(),
						Values:    s.Values(),
					})
				}
			}
		}
	}
	return doc, nil
}

func writeDocument(w io.Writer, doc *document, compress bool) error {
	if compress {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create zstd writer: %w", err)
		}
		if err := gojson.NewEncoder(enc).Encode(doc); err != nil {
			_ = enc.Close()
			return fmt.Errorf("encode tables: %w", err)
		}
		return enc.Close()
	}
	bw := bufio.NewWriter(w)
	if err := gojson.NewEncoder(bw).Encode(doc); err != nil {
		return fmt.Errorf("encode tables: %w", err)
	}
	return bw.Flush()
}

// readDocument decodes an export, zstd-compressed when compressed is set.
func readDocument(r io.Reader, compressed bool) (*document, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	var doc document
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	return &doc, nil
}
