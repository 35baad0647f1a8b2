package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/cart/internal/cart"
	"github.com/Makepad-fr/cart/internal/config"
	"github.com/Makepad-fr/cart/internal/logging"
	"github.com/Makepad-fr/cart/internal/store"
	"github.com/Makepad-fr/cart/internal/store/jsonstore"
	"github.com/Makepad-fr/cart/internal/store/memstore"
	"github.com/Makepad-fr/cart/internal/store/sqlitestore"
	"github.com/Makepad-fr/cart/internal/view"
)

// Options are the root flags. Empty values fall back to the config file.
type Options struct {
	ConfigPath string
	Backend    string
	Path       string
	Theme      string
	Group      bool
	Verbose    bool
}

// usageError marks bad arguments; Execute maps it to exit code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return usageError{msg: fmt.Sprintf(format, a...)}
}

// app is what a command needs once flags and config are resolved.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend store.Backend
	slot    *store.Slot
	theme   view.Theme
	out     io.Writer
}

func (a *app) close() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("close backend", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// newStore builds and hydrates a list store drawing through r.
func (a *app) newStore(r cart.Renderer) *cart.Store {
	s := cart.New(a.slot, r, a.logger)
	s.Initialize()
	return s
}

func (a *app) printer() *view.Printer {
	return view.NewPrinter(a.out, a.theme, a.cfg.UI.Group)
}

func setup(opt *Options, out io.Writer) (*app, error) {
	cfgPath := opt.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if opt.Backend != "" {
		cfg.Store.Backend = opt.Backend
	}
	if opt.Path != "" {
		cfg.Store.Path = opt.Path
	}
	if opt.Theme != "" {
		cfg.UI.Theme = opt.Theme
	}
	if opt.Group {
		cfg.UI.Group = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File, opt.Verbose)
	if err != nil {
		return nil, err
	}
	backend, err := openBackend(cfg.Store)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("store opened",
		zap.String("backend", cfg.Store.Backend),
		zap.String("path", cfg.Store.Path),
		zap.String("key", cfg.Store.Key))

	return &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		slot:    store.NewSlot(backend, cfg.Store.Key, logger),
		theme:   view.ThemeNamed(cfg.UI.Theme),
		out:     out,
	}, nil
}

func openBackend(sc config.StoreConfig) (store.Backend, error) {
	switch sc.Backend {
	case config.BackendSQLite:
		return sqlitestore.New(sc.Path)
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		return jsonstore.New(sc.Path)
	}
}

// NewRootCmd assembles the command tree writing to out and errOut. The
// returned func releases the store opened by whichever command ran.
func NewRootCmd(out, errOut io.Writer) (*cobra.Command, func()) {
	opt := &Options{}
	var a *app

	root := &cobra.Command{
		Use:   "cart",
		Short: "cart - a tiny shopping list",
		Long: `cart keeps a shopping list of named, counted items.

Every change is written to the store right away. Run without a subcommand
for the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = setup(opt, out)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&opt.ConfigPath, "config", "", "config file (default ~/.cart/config.yaml)")
	f.StringVar(&opt.Backend, "store", "", "storage backend: file, sqlite or memory")
	f.StringVar(&opt.Path, "path", "", "directory (file) or database file (sqlite)")
	f.StringVar(&opt.Theme, "theme", "", "theme: classic, neon or mono")
	f.BoolVar(&opt.Group, "group", false, "group output by remaining/purchased")
	f.BoolVarP(&opt.Verbose, "verbose", "v", false, "debug logging")

	appFn := func() *app { return a }
	root.AddCommand(
		newListCmd(appFn),
		newAddCmd(appFn),
		newRemoveCmd(appFn),
		newToggleCmd(appFn),
		newQtyCmd(appFn),
		newRenameCmd(appFn),
		newResetCmd(appFn),
		newTUICmd(appFn),
	)
	cleanup := func() {
		if a != nil {
			a.close()
		}
	}
	return root, cleanup
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(args []string, out, errOut io.Writer) int {
	root, cleanup := NewRootCmd(out, errOut)
	defer cleanup()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	view.ThemeNamed("").Fail(errOut, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return 2
	}
	return 1
}
