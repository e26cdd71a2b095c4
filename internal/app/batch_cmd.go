package app

import (
	"github.com/spf13/cobra"

	"mirpair/internal/batchscript"
)

func newBatchScriptCmd(st *state) *cobra.Command {
	var o batchscript.Options
	cmd := &cobra.Command{
		Use:   "batch-script --out-folder DIR --name NAME [flags]",
		Short: "Write a shell script running mirpair on every experiment folder",
		Long: `Write DIR/NAME.sh with one mirpair invocation per sub-folder of DIR
(sorted by name). Each line runs "pairing" (or "binding-at --pos N") with
--experiment and the selected -p/-n/-a flags, or "conflicts DIR".`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Command == batchscript.CommandBindingAt && !cmd.Flags().Changed("pos") {
				return usagef("--command binding-at needs --pos")
			}
			path, n, err := batchscript.Write(o)
			if err != nil {
				return usage(err)
			}
			st.log.Info("batch script written", "path", path, "experiments", n)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.OutFolder, "out-folder", "o", "", "folder holding the experiment sub-folders")
	f.StringVar(&o.Name, "name", "", "script name (.sh is appended)")
	f.StringVar(&o.Tool, "tool", "mirpair", "command to invoke in the script")
	f.StringVar(&o.Command, "command", batchscript.CommandPairing, "pairing | binding-at | conflicts")
	f.IntVar(&o.Pos, "pos", 0, "position for --command binding-at")
	f.BoolVarP(&o.Positive, "positive", "p", false, "pass -p")
	f.BoolVarP(&o.Negative, "negative", "n", false, "pass -n")
	f.BoolVarP(&o.All, "all", "a", false, "pass -a")
	f.BoolVar(&o.CRLF, "crlf", false, "use CRLF line endings")
	return cmd
}
