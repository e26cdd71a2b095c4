package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mirpair/internal/annotate"
	"mirpair/internal/config"
	"mirpair/internal/record"
	"mirpair/internal/tsv"
)

// annotateFlags are shared by pairing and binding-at.
type annotateFlags struct {
	targetFlags
	outputFlags
	failurePolicy   string
	strictAlignment bool
}

func (a *annotateFlags) register(cmd *cobra.Command) {
	a.targetFlags.register(cmd)
	a.outputFlags.register(cmd)
	f := cmd.Flags()
	f.StringVar(&a.failurePolicy, "failure-policy", "", "rows that cannot be rendered: empty | omit")
	f.BoolVar(&a.strictAlignment, "strict-alignment", false, "abort on the first alignment inconsistency")
}

// apply folds the command flags into the loaded config.
func (a *annotateFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("failure-policy") {
		cfg.FailurePolicy = a.failurePolicy
	}
	if f.Changed("strict-alignment") {
		cfg.StrictAlignment = a.strictAlignment
	}
	if err := cfg.Validate(); err != nil {
		return usage(err)
	}
	switch a.format {
	case annotate.FormatTSV, annotate.FormatJSONL:
	default:
		return usagef("unknown --format %q", a.format)
	}
	return nil
}

func newPairingCmd(st *state) *cobra.Command {
	var fl annotateFlags
	cmd := &cobra.Command{
		Use:   "pairing [flags] [FILE...]",
		Short: "Append the duplex diagram of every prediction",
		Long: `Append a Pairing column holding the miRNA:mRNA duplex diagram.

Output goes next to each input: x.positiveTargetSites.csv becomes
x.pairing.positiveTargetSites.csv, other files get ".pairing" before the
extension.

Examples:
  mirpair pairing results/exp1/exp1.positiveTargetSites.csv
  mirpair pairing --experiment results/exp1 -p -n
  mirpair pairing --stdout - < sites.tsv`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fl.apply(cmd, st.cfg); err != nil {
				return err
			}
			files, err := fl.resolve(args)
			if err != nil {
				return err
			}
			return st.annotateAll(cmd.Context(), files, annotate.Pairing{}, &fl, tsv.PairingPath)
		},
	}
	fl.register(cmd)
	return cmd
}

func newBindingAtCmd(st *state) *cobra.Command {
	var (
		fl     annotateFlags
		pos    int
		marker string
	)
	cmd := &cobra.Command{
		Use:   "binding-at --pos N [flags] [FILE...]",
		Short: "Report whether a transcript position is bonded in each prediction",
		Long: `Append a BindingAtPos_<N> column. Rows whose window contains N and whose
duplex has a bond at N get the diagram with that bond marked (default '{');
all other rows get an empty cell.

Output goes to x.BindingAt.<ext> next to each input.`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pos") {
				return usagef("--pos is required")
			}
			if cmd.Flags().Changed("marker") {
				st.cfg.HighlightMarker = marker
			}
			if err := fl.apply(cmd, st.cfg); err != nil {
				return err
			}
			files, err := fl.resolve(args)
			if err != nil {
				return err
			}
			ann := annotate.BindingAt{
				Pos:             pos,
				Marker:          st.cfg.Marker(),
				TranscriptStart: st.cfg.TranscriptStart,
			}
			derive := func(p string) string { return tsv.InsertInfix(p, "BindingAt") }
			return st.annotateAll(cmd.Context(), files, ann, &fl, derive)
		},
	}
	fl.register(cmd)
	cmd.Flags().IntVar(&pos, "pos", 0, "absolute transcript position to look up")
	cmd.Flags().StringVar(&marker, "marker", "", "glyph replacing the bond at --pos")
	return cmd
}

func (s *state) annotateAll(ctx context.Context, files []string, ann annotate.Annotator, fl *annotateFlags, derive func(string) string) error {
	for _, in := range files {
		if err := s.annotateFile(ctx, in, ann, fl, derive); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) annotateFile(ctx context.Context, in string, ann annotate.Annotator, fl *annotateFlags, derive func(string) string) error {
	src, err := tsv.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	out, outPath, finish, err := s.openOutput(in, fl.toStdout, func(p string) string { return fl.outputPath(p, derive) })
	if err != nil {
		return err
	}

	log := s.log.With("input", in)
	sum, err := annotate.Run(ctx, src, out, ann, annotate.Options{
		Threads:         s.cfg.Threads,
		Format:          fl.format,
		FailurePolicy:   s.cfg.FailurePolicy,
		StrictAlignment: s.cfg.StrictAlignment,
		Decode:          record.DecodeOptions{SiteEndExclusive: s.cfg.SiteEndExclusive},
		Logger:          log,
	})
	if err = finish(err); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if outPath != "" {
		log.Info("wrote", "output", outPath, "rows", sum.Rows, "failed", sum.Failures())
	}
	return nil
}

// openOutput returns the writer for one input: stdout when requested or when
// reading stdin, otherwise a temporary file beside the derived path. The
// returned finish renames the temporary file into place when the run
// succeeded and removes it otherwise, so a failed run leaves no partial
// output behind.
func (s *state) openOutput(in string, toStdout bool, derive func(string) string) (io.Writer, string, func(error) error, error) {
	if toStdout || in == "-" {
		return s.stdout, "", func(err error) error { return err }, nil
	}
	path := derive(in)
	if path == in {
		return nil, "", nil, fmt.Errorf("output %s would overwrite the input", path)
	}
	fh, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, "", nil, err
	}
	finish := func(runErr error) error {
		cerr := fh.Close()
		if runErr == nil && cerr != nil {
			runErr = cerr
		}
		if runErr != nil {
			_ = os.Remove(fh.Name())
			return runErr
		}
		if err := os.Rename(fh.Name(), path); err != nil {
			_ = os.Remove(fh.Name())
			return err
		}
		return nil
	}
	return fh, path, finish, nil
}
