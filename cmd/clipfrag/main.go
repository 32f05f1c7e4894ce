package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kk-code-lab/clipfrag/internal/app"
	"github.com/kk-code-lab/clipfrag/internal/clipboard"
	"github.com/kk-code-lab/clipfrag/internal/config"
	"github.com/kk-code-lab/clipfrag/internal/fragment"
	fsutil "github.com/kk-code-lab/clipfrag/internal/fs"
	"github.com/kk-code-lab/clipfrag/internal/state"
	"github.com/kk-code-lab/clipfrag/internal/ui/input"
)

// version is set by the linker.
var version = "dev"

var errUsage = errors.New("usage error")

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if err = applyFlags(env.Cfg, cmd); err != nil {
		return ctx, err
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// applyFlags lets the command line override configuration values.
func applyFlags(cfg *config.Config, cmd *cli.Command) error {
	if cmd.IsSet("chars") && cmd.IsSet("bytes") {
		return fmt.Errorf("%w: -c/--chars and -b/--bytes are mutually exclusive", errUsage)
	}
	switch {
	case cmd.IsSet("chars"):
		cfg.Fragment.Unit, cfg.Fragment.Limit = fragment.UnitChars.String(), int(cmd.Int("chars"))
	case cmd.IsSet("bytes"):
		cfg.Fragment.Unit, cfg.Fragment.Limit = fragment.UnitBytes.String(), int(cmd.Int("bytes"))
	}
	if _, err := cfg.Budget(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if cmd.IsSet("clipboard") {
		cfg.Clipboard.Backend = cmd.String("clipboard")
	}
	if cmd.Bool("preview") {
		cfg.Session.Preview = true
	}
	if cmd.Bool("debug") {
		cfg.Logging.ConsoleLogger.Level = "debug"
	}
	return nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling, errors from the action are
// returned as is and main decides on the exit code.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from the action
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}

func run(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if cmd.Bool("dump-config") {
		return outputConfiguration(os.Stdout, env.Cfg, cmd.Bool("default"))
	}

	if cmd.NArg() > 1 {
		return fmt.Errorf("%w: expected at most one input path, got %d", errUsage, cmd.NArg())
	}

	budget, err := env.Cfg.Budget()
	if err != nil {
		return err
	}

	src := fsutil.StdinSource()
	var commands io.Reader = os.Stdin
	if path := cmd.Args().Get(0); len(path) > 0 {
		src = fsutil.FileSource(filepath.Clean(path))
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			env.Log.Info("Reading input from terminal, finish with EOF")
		}
		tty, terr := input.OpenTerminal()
		if terr != nil {
			return fmt.Errorf("unable to open terminal for commands: %w", terr)
		}
		defer func() {
			err = multierr.Append(err, tty.Close())
		}()
		commands = tty
	}

	clip, err := clipboard.New(clipboard.Options{
		Backend:  env.Cfg.Clipboard.Backend,
		Command:  env.Cfg.Clipboard.Command,
		Terminal: os.Stderr,
	})
	if err != nil {
		return err
	}

	application, err := app.NewApplication(app.Options{
		Source:         src,
		Budget:         budget,
		HeaderTemplate: env.Cfg.Templates.Header,
		FooterTemplate: env.Cfg.Templates.Footer,
		Preview:        env.Cfg.Session.Preview,
		Stdin:          os.Stdin,
		Commands:       commands,
		Terminal:       os.Stderr,
		Clipboard:      clip,
		Log:            env.Log,
	})
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// outputConfiguration writes either the embedded defaults or the effective
// configuration (defaults, file and flags combined) as YAML.
func outputConfiguration(out io.Writer, cfg *config.Config, defaults bool) error {
	var (
		data []byte
		err  error
	)
	if defaults {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func main() {

	// Interrupt leaves the clipboard as it is and ends with an error.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	cmdline := &cli.Command{
		Name:            config.AppName,
		Usage:           "feeds a text to the clipboard in size-limited fragments",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "chars", Aliases: []string{"c"}, Usage: "limit fragments to `N` characters (default 10240)"},
			&cli.IntFlag{Name: "bytes", Aliases: []string{"b"}, Usage: "limit fragments to `N` UTF-8 bytes"},
			&cli.StringFlag{Name: "config", DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "clipboard", Usage: "clipboard `BACKEND` (auto, system, command, osc52)"},
			&cli.BoolFlag{Name: "preview", Usage: "show a one-line excerpt of every fragment above its prompt"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log session transitions to stderr"},
			&cli.BoolFlag{Name: "dump-config", Usage: "print the effective configuration (YAML) and exit"},
			&cli.BoolFlag{Name: "default", Usage: "with --dump-config print the embedded default configuration instead"},
		},
		ArgsUsage: "[INPUT]",
		Action:    run,
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = cmdline.Run(ctx, os.Args)
}
