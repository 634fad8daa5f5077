// Package main provides the kvshell CLI entry point.
// kvshell is an interactive client that renders key-value server replies for humans
// and, when piped, as raw output for scripts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"kvshell/internal/client"
	"kvshell/internal/completion"
	"kvshell/internal/config"
	"kvshell/internal/logger"
	"kvshell/internal/output"
	"kvshell/internal/render"
	"kvshell/internal/shell"
	"kvshell/internal/style"
	"kvshell/internal/version"
	"kvshell/pkg/kvtypes"
)

var (
	testMode        bool
	detailedVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kvshell",
	Short: "kvshell - interactive key-value client",
	Long: `kvshell sends commands to a key-value server and renders the replies.
Key names returned by KEYS feed tab completion for later commands.`,
	SilenceUsage: true,
	RunE:         runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	RunE:  runShell,
}

var renderCmd = &cobra.Command{
	Use:   "render <replies.yaml>",
	Short: "Render every reply of a recording",
	Long: `Render each recorded reply in file order, exactly as the interactive shell would.
Completion state is not kept, so this also works where no terminal is attached.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available color themes",
	RunE:  runThemes,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		if detailedVersion {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	versionCmd.Flags().BoolVar(&detailedVersion, "detailed", false, "Show build details")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(versionCmd)
}

// app is everything a command needs after startup checks have passed.
type app struct {
	cfg        config.Config
	dispatcher *render.Dispatcher
	printer    *output.Printer
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{
		Flags:    cmd.Flags(),
		StdoutFd: os.Stdout.Fd(),
		TestMode: testMode,
	})
	if err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, testMode); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	if cfg.NoColor || testMode {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	resolver, err := style.Load(cfg.Theme)
	if err != nil {
		return nil, err
	}

	dispatcher, err := render.NewDispatcher(resolver, render.Options{Raw: cfg.Raw})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		dispatcher: dispatcher,
		printer:    output.NewPrinter(output.Raw(cfg.Raw)),
	}, nil
}

// fatalOnStartup aborts with a message naming the missing style for configuration errors.
func fatalOnStartup(err error) {
	var configErr *style.ConfigError
	if errors.As(err, &configErr) {
		logger.Fatal("Invalid theme configuration", "theme", configErr.Theme, "missing", configErr.Name)
	}
	logger.Fatal("Startup failed", "error", err)
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		fatalOnStartup(err)
	}
	if a.cfg.Replay == "" {
		return errors.New("no server connection configured: pass --replay <replies.yaml>")
	}

	replay, err := client.LoadReplay(a.cfg.Replay)
	if err != nil {
		return err
	}

	store := completion.NewStore()
	session := shell.NewSession(replay, a.dispatcher, store, a.printer)
	completer := completion.NewCompleter(completion.DefaultGrammar(), store)

	logger.Info("Starting kvshell", "version", version.Version, "replay", a.cfg.Replay)
	shell.Run(session, completer, version.GetFormattedVersion()+" - type 'exit' to quit.")
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		fatalOnStartup(err)
	}

	replay, err := client.LoadReplay(args[0])
	if err != nil {
		return err
	}

	session := shell.NewSession(replay, a.dispatcher, completion.Nop{}, a.printer)
	return session.Replay(replay.Entries())
}

func runThemes(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		fatalOnStartup(err)
	}

	sample := kvtypes.BulkList("user:1", "user:2")
	for _, name := range style.Themes() {
		resolver, err := style.Load(name)
		if err != nil {
			return err
		}
		dispatcher, err := render.NewDispatcher(resolver, render.Options{})
		if err != nil {
			return err
		}

		fmt.Println(name + ":")
		for _, result := range []render.Result{
			dispatcher.Render("SET", kvtypes.Status("OK"), nil),
			dispatcher.Render("GET", kvtypes.Error("ERR unknown command"), nil),
			dispatcher.Render("KEYS", sample, nil),
		} {
			if err := a.printer.Write(result); err != nil {
				return err
			}
		}
	}
	return nil
}
