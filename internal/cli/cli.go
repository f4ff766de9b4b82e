// Package cli is the todo command line: a cobra command tree over one
// todos.Store per invocation.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// needsStore marks commands that load the collection before they run.
const needsStore = "tada/store"

// Options wire a run to its surroundings. Zero values mean the process's own
// stdio, the configured backend and the wall clock.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Slot, when set, replaces the configured backend.
	Slot store.Slot
	Now  func() time.Time
}

type rootFlags struct {
	config   string
	dataDir  string
	backend  string
	theme    string
	logLevel string
}

// app is the state shared by the commands of one invocation.
type app struct {
	opt   Options
	flags rootFlags

	cfg     *config.Config
	cfgPath string
	theme   ui.Theme
	logger  *log.Logger
	store   *todos.Store
	closers []io.Closer

	restoreSlog func()
}

// Run executes args (without the program name) and returns the exit code.
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}

	a := &app{opt: opt, theme: ui.Lookup(ui.Dark), logger: logging.Discard()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := root.Execute()
	a.close()
	return a.report(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list for the terminal",
		Long: `todo keeps a list of todos, each with a category and an optional due date.

Run without a subcommand to open the interactive list.`,
		Example: `  todo add "Buy milk" -c shopping
  todo ls --status active
  todo done 2
  todo rm 3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		Annotations:       map[string]string{needsStore: "true"},
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error(), hint: fmt.Sprintf("Hint: run `%s --help` for usage", cmd.CommandPath())}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/tada/config.yaml)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the todo list")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: light, dark or mono")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.doneCmd(),
		a.rmCmd(),
		a.editCmd(),
		a.clearCmd(),
		a.statsCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup loads config, then builds the logger and the store for commands
// that need one.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfgPath = a.flags.config
	if a.cfgPath == "" {
		a.cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = a.flags.backend
	}
	if flags.Changed("theme") {
		cfg.Theme = a.flags.theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{msg: err.Error(), err: err}
	}
	a.cfg = cfg
	a.theme = ui.Lookup(cfg.Theme)

	if cmd.Annotations[needsStore] != "true" {
		return nil
	}

	if err := a.openLogger(cmd); err != nil {
		return err
	}
	a.restoreSlog = logging.InstallDefault(a.logger)
	slot, err := a.openSlot()
	if err != nil {
		return err
	}
	a.store = todos.Open(slot, todos.WithLogger(a.logger), todos.WithClock(a.opt.Now))
	return nil
}

// openLogger sends logs to stderr, except for the interactive list, which
// owns the terminal and logs to a file in the data directory.
func (a *app) openLogger(cmd *cobra.Command) error {
	if !isTUI(cmd) {
		a.logger = logging.New(a.opt.Stderr, a.cfg.LogLevel)
		return nil
	}
	f, err := logging.OpenFile(a.cfg.DataDir)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, f)
	a.logger = logging.New(f, a.cfg.LogLevel)
	return nil
}

func (a *app) openSlot() (store.Slot, error) {
	if a.opt.Slot != nil {
		return a.opt.Slot, nil
	}
	switch a.cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(a.cfg.DBPath())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		a.logger.Debug("using sqlite backend", "path", a.cfg.DBPath())
		return s, nil
	case config.BackendMemory:
		a.logger.Debug("using memory backend")
		return store.NewMemory(), nil
	default:
		d := jsonstore.New(a.cfg.DataDir)
		a.logger.Debug("using file backend", "path", d.Path(todos.DefaultKey))
		return d, nil
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
	if a.restoreSlog != nil {
		a.restoreSlog()
		a.restoreSlog = nil
	}
}

// saved turns a failed write of the last mutation into a command error.
func (a *app) saved() error {
	if err := a.store.Err(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// report prints err and maps it to an exit code.
func (a *app) report(err error) int {
	if err == nil {
		return ExitOK
	}

	var fe *form.Error
	if errors.As(err, &fe) {
		for _, f := range fe.Fields {
			ui.Fail(a.opt.Stderr, a.theme, f.Message)
		}
		return ExitUsage
	}

	var ue *usageError
	if errors.As(err, &ue) {
		ui.Fail(a.opt.Stderr, a.theme, ue.msg)
		if ue.hint != "" {
			ui.Hint(a.opt.Stderr, a.theme, ue.hint)
		}
		return ExitUsage
	}

	ui.Fail(a.opt.Stderr, a.theme, err.Error())
	return ExitError
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// usageError is a mistake in how the command was invoked. It exits 2.
type usageError struct {
	msg  string
	hint string
	err  error
}

func (e *usageError) Error() string { return e.msg }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exactArgs is cobra.ExactArgs with a usage line instead of cobra's message.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{msg: "usage: " + usage}
		}
		return nil
	}
}
