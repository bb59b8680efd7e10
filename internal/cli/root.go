package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"textmerge-cli/internal/config"
	"textmerge-cli/internal/fileset"
	"textmerge-cli/internal/format"
	"textmerge-cli/internal/ingest"
	"textmerge-cli/internal/logging"
	"textmerge-cli/internal/resize"
	"textmerge-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Locale      string
	Extensions  []string
	Sensitivity int
	MinHeight   int
	Height      int
	Theme       string
	Markdown    bool
	LogFile     string
	LogLevel    string
	Format      string
	PrettyJSON  bool
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "textmerge [paths...]",
		Short:        "Merge text files in a chosen order",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Open the interactive merger on a directory of .txt files
  textmerge ./chapters

  # Print the merged text, moving intro.txt one step down first
  textmerge merge ./chapters --move intro.txt:down

  # Show the merge order
  textmerge order ./chapters --format text
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, args)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.resolve(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return logging.Init(logging.Config{Level: app.LogLevel, OutputPath: app.LogFile})
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = logging.Sync()
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Locale, "locale", envOr("TEXTMERGE_LOCALE", ""), "BCP 47 locale used to sort file names (default: root collation)")
	pf.StringSliceVar(&app.Extensions, "ext", envList("TEXTMERGE_EXT"), "Extensions read from directories (default .txt; \"*\" for any)")
	pf.IntVar(&app.Sensitivity, "sensitivity", envInt("TEXTMERGE_SENSITIVITY", 0), "Rows of drag travel per row of resize")
	pf.IntVar(&app.MinHeight, "min-height", envInt("TEXTMERGE_MIN_HEIGHT", 0), "Smallest merged view height in rows")
	pf.IntVar(&app.Height, "height", envInt("TEXTMERGE_HEIGHT", 0), "Initial merged view height in rows")
	pf.StringVar(&app.Theme, "theme", envOr("TEXTMERGE_THEME", ""), "TUI background: auto|light|dark")
	pf.BoolVar(&app.Markdown, "markdown", envBool("TEXTMERGE_MARKDOWN"), "Render the merged view as markdown")
	pf.StringVar(&app.LogFile, "log-file", envOr("TEXTMERGE_LOG_FILE", ""), "Write JSON debug logs to this file")
	pf.StringVar(&app.LogLevel, "log-level", envOr("TEXTMERGE_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	pf.StringVar(&app.Format, "format", envOr("TEXTMERGE_FORMAT", "json"), "Output format (json|text)")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newMergeCmd(app))
	cmd.AddCommand(newOrderCmd(app))

	return cmd
}

// resolve fills anything not given by flag or env from the config file. Zero
// values count as given, so --markdown=false and --min-height 0 stick.
func (app *App) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	given := func(flag, env string) bool {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			return true
		}
		return strings.TrimSpace(os.Getenv(env)) != ""
	}

	if !given("locale", "TEXTMERGE_LOCALE") {
		app.Locale = cfg.Locale
	}
	app.Extensions = config.NormalizeExtensions(app.Extensions)
	if len(app.Extensions) == 0 {
		app.Extensions = cfg.Extensions
	}
	if !given("sensitivity", "TEXTMERGE_SENSITIVITY") {
		app.Sensitivity = cfg.Viewport.Sensitivity
	}
	if !given("min-height", "TEXTMERGE_MIN_HEIGHT") {
		app.MinHeight = cfg.Viewport.MinHeight
	}
	if !given("height", "TEXTMERGE_HEIGHT") {
		app.Height = cfg.Viewport.Height
	}
	if !given("theme", "TEXTMERGE_THEME") {
		app.Theme = cfg.TUI.Theme
	}
	if !given("markdown", "TEXTMERGE_MARKDOWN") {
		app.Markdown = cfg.TUI.Markdown
	}
	return nil
}

func (app *App) viewport() resize.Config {
	return resize.Config{
		Initial:     app.Height,
		Min:         app.MinHeight,
		Sensitivity: app.Sensitivity,
	}
}

func runTUI(app *App, paths []string) error {
	return tui.Run(tui.Options{
		Paths:      paths,
		Locale:     app.Locale,
		Extensions: app.Extensions,
		Viewport:   app.viewport(),
		Theme:      app.Theme,
		Markdown:   app.Markdown,
	})
}

// loadSet ingests paths as one batch and applies scripted moves in order.
func loadSet(cmd *cobra.Command, app *App, paths []string, moves []string) (*fileset.Set, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}
	entries, err := ingest.Batch(cmd.Context(), paths, ingest.Options{Extensions: app.Extensions})
	if err != nil {
		return nil, err
	}
	set := fileset.New(app.Locale)
	set.Ingest(entries)

	for _, mv := range moves {
		name, dir, err := parseMove(mv)
		if err != nil {
			return nil, err
		}
		idx := set.IndexOf(name)
		if idx < 0 {
			return nil, fmt.Errorf("move %q: no file named %q", mv, name)
		}
		set.Select(idx)
		set.MoveSelected(dir)
	}
	return set, nil
}

// parseMove splits "name:up" / "name:down". The name may itself contain colons.
func parseMove(s string) (string, fileset.Direction, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return "", fileset.Down, fmt.Errorf("invalid move %q (want name:up or name:down)", s)
	}
	dir, ok := fileset.ParseDirection(s[i+1:])
	if !ok {
		return "", fileset.Down, fmt.Errorf("invalid move %q (want name:up or name:down)", s)
	}
	return s[:i], dir, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func envBool(k string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	return b
}

func envList(k string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
