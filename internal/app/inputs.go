package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mirpair/internal/annotate"
	"mirpair/internal/cliutil"
	"mirpair/internal/tsv"
)

// targetFlags select miRAW result files inside experiment folders.
type targetFlags struct {
	experiments []string
	positive    bool
	negative    bool
	all         bool
}

func (t *targetFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&t.experiments, "experiment", nil, "miRAW experiment folder (repeatable)")
	f.BoolVarP(&t.positive, "positive", "p", false, "use <experiment>.positiveTargetSites.csv")
	f.BoolVarP(&t.negative, "negative", "n", false, "use <experiment>.negativeTargetSites.csv")
	f.BoolVarP(&t.all, "all", "a", false, "use <experiment>.allTargetSites.csv")
}

func (t *targetFlags) tails() []string {
	var out []string
	if t.positive {
		out = append(out, tsv.TailPositive)
	}
	if t.negative {
		out = append(out, tsv.TailNegative)
	}
	if t.all {
		out = append(out, tsv.TailAll)
	}
	return out
}

// resolve expands positional files and experiment folders into the list of
// target-site files to read.
func (t *targetFlags) resolve(args []string) ([]string, error) {
	files, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, usage(err)
	}
	if len(t.experiments) > 0 {
		tails := t.tails()
		if len(tails) == 0 {
			return nil, usagef("--experiment needs at least one of -p, -n or -a")
		}
		for _, dir := range t.experiments {
			fi, err := os.Stat(dir)
			if err != nil || !fi.IsDir() {
				return nil, usagef("experiment folder %s not found", dir)
			}
			files = append(files, tsv.ExperimentFiles(dir, tails)...)
		}
	}
	if len(files) == 0 {
		return nil, usagef("no input: give target-site files or --experiment")
	}
	if cliutil.CountStdin(files) > 1 {
		return nil, usagef("stdin (-) may be given only once")
	}
	if err := cliutil.RequireFiles(files); err != nil {
		return nil, usage(err)
	}
	return files, nil
}

// outputFlags pick the destination and format of annotated rows.
type outputFlags struct {
	format   string
	toStdout bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.format, "format", annotate.FormatTSV, "output format: tsv | jsonl")
	f.BoolVar(&o.toStdout, "stdout", false, "write to stdout instead of a sibling file")
}

// outputPath maps an input file to its derived output file. JSONL output
// swaps the extension.
func (o *outputFlags) outputPath(in string, derive func(string) string) string {
	p := derive(in)
	if o.format == annotate.FormatJSONL {
		p = strings.TrimSuffix(p, filepath.Ext(p)) + ".jsonl"
	}
	return p
}
