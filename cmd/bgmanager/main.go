// Package main is the entry point for the bgmanager CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/darkawower/bgmanager/internal/config"
	"github.com/darkawower/bgmanager/internal/core"
	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/darkawower/bgmanager/internal/settings"
	"github.com/darkawower/bgmanager/internal/ui"

	_ "github.com/darkawower/bgmanager/internal/platform/stub"
	_ "github.com/darkawower/bgmanager/internal/platform/windows"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// errUsage means usage has already been printed and the process should
// exit with status 1 without further output.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], ui.DefaultOutput()))
}

// app holds the flags and output shared by all commands.
type app struct {
	out *ui.Output

	// Global flags
	cfgFile string
	file    string
	verbose bool
	quiet   bool
	noColor bool
}

// run executes the CLI and returns the process exit code.
func run(args []string, out *ui.Output) int {
	a := &app{out: out}
	root := a.rootCmd()
	root.SetOut(out.Writer())
	root.SetErr(out.Writer())
	root.SetArgs(normalizeArgs(root, args))

	err := root.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errUsage) {
		a.reportError(err)
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bgmanager",
		Short: "Desktop background manager for multi-monitor Windows setups",
		Long: `bgmanager saves the desktop background of every monitor to a JSON file,
replaces it with a solid colour and restores it later.

Run without arguments to print usage and the current settings.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.applyFlags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.out.Error("Unknown command: %s", args[0])
				a.printUsage(cmd.Root())
				return errUsage
			}
			a.printUsage(cmd.Root())
			a.out.Print("")
			return a.showStatus()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ~/.config/bgmanager/config.toml)")
	root.PersistentFlags().StringVar(&a.file, "file", "", "settings file (default: backup path from config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output and error traces")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	help := &cobra.Command{
		Use:     "help",
		Aliases: []string{"?"},
		Short:   "Show this help",
		Args:    cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.printUsage(cmd.Root())
		},
	}
	root.SetHelpCommand(help)
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		a.applyFlags()
		a.printUsage(cmd.Root())
	})
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		a.applyFlags()
		a.out.Error("%v", err)
		a.printUsage(cmd.Root())
		return errUsage
	})

	root.AddCommand(
		a.saveCmd(),
		a.whiteCmd(),
		a.restoreCmd(),
		a.statusCmd(),
		a.initCmd(),
		a.versionCmd(),
		help,
	)

	return root
}

// applyFlags pushes output flags into the shared Output.
func (a *app) applyFlags() {
	a.out.SetVerbose(a.verbose)
	a.out.SetQuiet(a.quiet)
	a.out.SetNoColor(a.noColor || os.Getenv("NO_COLOR") != "")
}

// normalizeArgs accepts "-save", "/SAVE" and "Save" for the save command.
// The first argument is rewritten only when the stripped, lowercased form
// names a command, so flags such as -v pass through untouched.
func normalizeArgs(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return args
	}

	name := strings.ToLower(strings.TrimLeft(args[0], "-/"))
	if name == "" {
		return args
	}
	cmd, _, err := root.Find([]string{name})
	if err != nil || cmd == root {
		return args
	}

	normalized := make([]string, 0, len(args))
	normalized = append(normalized, name)
	return append(normalized, args[1:]...)
}

// printUsage prints the command overview. It is shown for help, for unknown
// commands and when no command is given.
func (a *app) printUsage(root *cobra.Command) {
	a.out.Section("Desktop Background Manager (Multi-Monitor)")
	a.out.Print("")
	a.out.Print("Usage:")

	cmds := root.Commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	width := 0
	for _, c := range cmds {
		width = max(width, len(commandLabel(c)))
	}
	for _, c := range cmds {
		if c.Hidden {
			continue
		}
		a.out.Print("  bgmanager %-*s  %s", width, commandLabel(c), c.Short)
	}

	a.out.Print("")
	a.out.Print("Options:")
	a.out.Printf("%s", root.PersistentFlags().FlagUsages())
}

func commandLabel(c *cobra.Command) string {
	if len(c.Aliases) == 0 {
		return c.Name()
	}
	return c.Name() + " | " + strings.Join(c.Aliases, " | ")
}

// reportError prints a failed command's error. With --verbose the stack
// recorded where the error originated is printed as well.
func (a *app) reportError(err error) {
	a.applyFlags()

	if errors.Is(err, platform.ErrUnsupported) {
		a.out.ErrorWithHint(err.Error(), "bgmanager requires Windows 8 or later")
	} else {
		a.out.Error("%v", err)
	}

	if !a.verbose {
		return
	}
	if st := errorStack(err); st != nil {
		fmt.Fprintf(a.out.Writer(), "%+v\n", st)
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// errorStack returns the innermost stack trace attached to err's chain.
func errorStack(err error) pkgerrors.StackTrace {
	var st pkgerrors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if t, ok := e.(stackTracer); ok {
			st = t.StackTrace()
		}
	}
	return st
}

// withManager opens the wallpaper service, builds a Manager and runs fn.
// The service is released on every exit path.
func (a *app) withManager(fn func(m *core.Manager) error) (err error) {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.out.Debug("Config: %s", cfg.ConfigPath())

	p := platform.Current()
	a.out.Debug("Platform: %s", p.Name())

	svc, err := p.OpenMonitorService()
	if err != nil {
		return fmt.Errorf("failed to open wallpaper service: %w", err)
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to release wallpaper service: %w", cerr)
		}
	}()

	path := cfg.Backup.Path
	if a.file != "" {
		path = a.file
	}
	a.out.Debug("Settings file: %s", path)

	m := core.New(svc, p.Topology(), settings.NewStore(path),
		core.WithLogger(a.out),
		core.WithFallbackColor(cfg.FallbackColor()),
		core.WithPlaceholder(cfg.Placeholder()),
	)

	return fn(m)
}

// shortenPath shortens a path for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if len(path) > len(home) && path[:len(home)] == home {
		return "~" + path[len(home):]
	}
	return path
}

// baseName returns the last element of a Windows or slash-separated path.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
