package app

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"mirpair/internal/config"
	"mirpair/internal/version"
)

// state is shared by the command tree of one Run.
type state struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	threads    int
	logLevel   string
	logFile    string
	quiet      bool

	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
}

func (s *state) close() {
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(v(cmd, args))
	}
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "mirpair",
		Short: "Render miRNA:target duplexes from miRAW predictions",
		Long: `mirpair reads miRAW target-site tables and appends a column per row:
the three-line miRNA:mRNA duplex diagram, or that diagram with the bond at a
given transcript position highlighted.

Configuration is read from --config (YAML), then MIRPAIR_* environment
variables, then flags.`,
		Version:       version.String(),
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd == cmd.Root() {
				return nil
			}
			return st.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&st.configPath, "config", "", "YAML config file")
	pf.IntVarP(&st.threads, "threads", "t", 0, "worker goroutines (0=all CPUs)")
	pf.StringVar(&st.logLevel, "log-level", "", "debug | info | warn | error")
	pf.StringVar(&st.logFile, "log-file", "", "also write JSON logs to this file")
	pf.BoolVarP(&st.quiet, "quiet", "q", false, "only log errors to stderr")

	root.AddCommand(
		newPairingCmd(st),
		newBindingAtCmd(st),
		newCutoffCmd(st),
		newConflictsCmd(st),
		newBatchScriptCmd(st),
		newVersionCmd(st),
	)
	return root
}

// setup loads the config, applies flags over it and builds the logger.
func (s *state) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return usage(err)
	}
	flags := cmd.Flags()
	if flags.Changed("threads") {
		cfg.Threads = s.threads
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = s.logFile
	}
	cfg.Log.Quiet = s.quiet
	if err := cfg.Validate(); err != nil {
		return usage(err)
	}

	logger, closeLog, err := config.SetupLogger(s.stderr, cfg.Log, cfg.Level())
	if err != nil {
		return usage(err)
	}
	s.cfg, s.log, s.closeLog = cfg, logger, closeLog
	logger.Debug("config loaded", "path", s.configPath, "threads", cfg.Threads,
		"failure_policy", cfg.FailurePolicy, "strict_alignment", cfg.StrictAlignment)
	return nil
}
