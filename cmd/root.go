package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/hadeslang/hades/internal/compiler"
	"github.com/hadeslang/hades/internal/compiler/diag"
	"github.com/hadeslang/hades/internal/configs"
	"github.com/hadeslang/hades/internal/logs"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	colorMode  string

	cfg    = configs.Default()
	logger *slog.Logger
	driver *compiler.Driver
)

// errReported marks a failure whose details were already printed.
var errReported = errors.New("errors reported")

var colorModes = []string{"auto", "always", "never"}

var rootCmd = &cobra.Command{
	Use:   "hades",
	Short: "Hades parser, formatter and syntax checker",
	Long: `Hades is the front end for the Hades language: it lexes and parses
.hd source files and reports syntax errors against the source.

Commands:
  init     Scaffold a new Hades project
  check    Parse source files and report syntax errors
  ast      Print the syntax tree of a source file
  tokens   Print the token stream of a source file
  fmt      Print or rewrite source files in canonical form
  outline  List the declarations of a source file
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./hades.cue, then user and system config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "colour diagnostics: auto, always or never")

	rootCmd.AddCommand(InitCmd, CheckCmd, AstCmd, TokensCmd, FmtCmd, OutlineCmd)
}

// setup loads the configuration; flags given on the command line win over
// config values.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := configs.Load(configs.SearchPaths(configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := logs.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cmd.Flags().Changed("color") {
		if !slices.Contains(colorModes, colorMode) {
			return fmt.Errorf("invalid --color %q: want auto, always or never", colorMode)
		}
		cfg.Color = colorMode
	}

	logger = logs.NewLogger(cmd.ErrOrStderr())
	driver = compiler.NewDriver(logger, compiler.Options{
		Indent:         cfg.Format.Indent,
		CheckRoundtrip: cfg.Format.CheckRoundtrip,
	})
	logger.Debug("config loaded", "files", cfg.Files, "level", logs.Level())
	for _, key := range cfg.Shadowed {
		logger.Info("config value set in several files, the first one wins", "path", key, "files", cfg.Files)
	}
	return nil
}

func useColor(w io.Writer) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return diag.IsTerminal(w)
}

// report renders err for path on stderr.
func report(cmd *cobra.Command, path, src string, err error) {
	w := cmd.ErrOrStderr()
	if !compiler.IsSyntaxError(err) {
		err = logs.WrapFile(logs.WithFile(cmd.Context(), path), err)
	}
	_ = diag.Render(w, src, err, diag.Options{Filename: path, Color: useColor(w)})
}
