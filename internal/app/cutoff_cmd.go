package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"mirpair/internal/cliutil"
	"mirpair/internal/cutoff"
	"mirpair/internal/tsv"
)

func newCutoffCmd(st *state) *cobra.Command {
	var (
		prob, energy float64
		toStdout     bool
	)
	cmd := &cobra.Command{
		Use:   "cutoff --prob P --energy E [flags] FILE...",
		Short: "Keep predictions above a probability and free-energy cutoff",
		Long: `Copy rows whose |Prediction| >= |P| and |MFE| >= |E| to x.cutoffFiltered.<ext>.
A zero cutoff disables that test. P must be within [0,1], E must be <= 0.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cutoff.NewFilter(prob, energy)
			if err != nil {
				return usage(err)
			}
			if !f.Active() {
				st.log.Warn("no cutoff given, rows are copied unchanged")
			}
			files, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usage(err)
			}
			if err := cliutil.RequireFiles(files); err != nil {
				return usage(err)
			}
			for _, in := range files {
				if err := st.cutoffFile(in, f, toStdout); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.Float64VarP(&prob, "prob", "P", 0, "minimum prediction probability, 0..1")
	fl.Float64VarP(&energy, "energy", "e", 0, "maximum MFE (<= 0); weaker bindings are dropped")
	fl.BoolVar(&toStdout, "stdout", false, "write to stdout instead of a sibling file")
	return cmd
}

func (s *state) cutoffFile(in string, f cutoff.Filter, toStdout bool) error {
	src, err := tsv.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	derive := func(p string) string { return tsv.InsertInfix(p, "cutoffFiltered") }
	out, outPath, finish, err := s.openOutput(in, toStdout, derive)
	if err != nil {
		return err
	}
	_, err = cutoff.Apply(src, out, f, s.log.With("input", in, "output", outPath))
	if err = finish(err); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return nil
}
