package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mirpair/internal/cliutil"
	"mirpair/internal/conflicts"
	"mirpair/internal/tsv"
)

func newConflictsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts EXPERIMENT_DIR...",
		Short: "Split out gene:miRNA pairs predicted both as target and non-target",
		Long: `Read DIR/<base>.targetPredictionOutput.csv and mark every gene:miRNA pair
with both positive and negative sites as conflicted. Each of the all, positive
and negative target-site tables is copied to x.withoutConflicts.csv without
those pairs; the conflicted rows of the all table go to
x.allTargetSites.onlyConflicts.csv. Experiments without conflicts are skipped.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usage(err)
			}
			for _, dir := range dirs {
				files := tsv.ExperimentFiles(dir, []string{conflicts.TailSummary, tsv.TailAll, tsv.TailPositive, tsv.TailNegative})
				if err := cliutil.RequireFiles(files); err != nil {
					return usage(err)
				}
				if err := st.splitExperiment(files[0], files[1:]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}

// splitExperiment reads the conflicted pairs from summary and splits every
// target table. Only the first table also gets an onlyConflicts file.
func (s *state) splitExperiment(summary string, tables []string) error {
	src, err := tsv.Open(summary)
	if err != nil {
		return err
	}
	set, err := conflicts.ReadSummary(src)
	_ = src.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", summary, err)
	}
	if len(set) == 0 {
		s.log.Info("no conflicts", "summary", summary)
		return nil
	}
	s.log.Info("conflicted pairs", "summary", summary, "pairs", len(set))
	for i, in := range tables {
		if err := s.splitFile(in, set, i == 0); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) splitFile(in string, set conflicts.Set, withOnly bool) error {
	src, err := tsv.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	keep, keepPath, finishKeep, err := s.openOutput(in, false, func(p string) string { return tsv.InsertInfix(p, conflicts.InfixWithout) })
	if err != nil {
		return err
	}
	var only io.Writer
	finishOnly := func(err error) error { return err }
	if withOnly {
		only, _, finishOnly, err = s.openOutput(in, false, func(p string) string { return tsv.InsertInfix(p, conflicts.InfixOnly) })
		if err != nil {
			return finishKeep(err)
		}
	}

	_, err = conflicts.Split(src, keep, only, set, s.log.With("input", in, "output", keepPath))
	err = finishOnly(err)
	if err = finishKeep(err); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return nil
}
