package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/hebdo/internal/config"
	"github.com/christopherklint97/hebdo/internal/ledger"
	"github.com/christopherklint97/hebdo/internal/notify"
	"github.com/christopherklint97/hebdo/internal/session"
	"github.com/christopherklint97/hebdo/internal/store"
	"github.com/christopherklint97/hebdo/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var dataPath string

var rootCmd = &cobra.Command{
	Use:   "hebdo",
	Short: "Weekly worked-hours sheet",
	Long:  "hebdo adds up your arrival and departure times for the week, takes off the lunch break and shows how much is left to reach 38h30.",
	RunE:  runSheet,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the week's hours",
	RunE:  runStatus,
}

var setCmd = &cobra.Command{
	Use:   "set <day> <arrival HH:MM> <departure HH:MM>",
	Short: "Set one day's arrival and departure",
	Args:  cobra.ExactArgs(3),
	RunE:  runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every day of the week",
	RunE:  runReset,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path of the saved week (overrides config)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}
	return cfg, nil
}

// newLogger writes to ~/.config/hebdo/hebdo.log in debug mode and
// discards otherwise, since the terminal belongs to the form.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if !cfg.Log.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	if err := config.EnsureConfigDir(); err != nil {
		return nil, nil, fmt.Errorf("creating config directory: %w", err)
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "hebdo.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Storage.Backend {
	case store.BackendSQLite:
		db, err := store.OpenDB(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return db, nil
	default:
		return store.NewFile(cfg.Storage.Path), nil
	}
}

// openSession loads the saved week. The returned cleanup closes the
// backend and the log file.
func openSession(withNotifications bool) (*session.Session, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}

	var notifier notify.Notifier = notify.Discard{}
	if withNotifications && cfg.Notifications.Enabled {
		notifier = notify.NewDesktop(logger)
	}

	sess := session.New(backend, notifier, logger)
	cleanup := func() {
		sess.Close()
		closeLog()
	}

	if err := sess.Load(); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return sess, cfg, cleanup, nil
}

func runSheet(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runStatus(cmd, args)
	}

	sess, cfg, cleanup, err := openSession(true)
	if err != nil {
		return err
	}
	defer cleanup()

	app := tui.NewApp(sess, cfg.ErrorDelay())
	p := tea.NewProgram(app)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	result := app.GetResult()
	if result != nil && !result.Saved && result.SaveErr != nil {
		return fmt.Errorf("week not saved: %w", result.SaveErr)
	}

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, _, cleanup, err := openSession(false)
	if err != nil {
		return err
	}
	defer cleanup()

	printWeek(cmd.OutOrStdout(), sess.Ledger())
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	day, ok := ledger.ParseDay(args[0])
	if !ok {
		return fmt.Errorf("unknown day %q (expected one of %v)", args[0], ledger.Days)
	}

	arrival, err := parseClock(args[1])
	if err != nil {
		return err
	}
	departure, err := parseClock(args[2])
	if err != nil {
		return err
	}

	sess, _, cleanup, err := openSession(true)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := sess.SetDay(day, arrival, departure); err != nil {
		return fmt.Errorf("setting %s: %w", day, err)
	}

	if err := sess.Save(); err != nil {
		return err
	}

	printWeek(cmd.OutOrStdout(), sess.Ledger())
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	sess, _, cleanup, err := openSession(false)
	if err != nil {
		return err
	}
	defer cleanup()

	sess.Reset()
	if err := sess.Save(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Week cleared.")
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if err := config.WriteDefault(configPath); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	out := cmd.OutOrStdout()
	path, err := exec.LookPath(editor)
	if err != nil {
		fmt.Fprintf(out, "Could not find editor %q. Config file is at: %s\n", editor, configPath)
		return nil
	}

	fmt.Fprintf(out, "Opening %s with %s...\n", configPath, editor)

	c := exec.Command(path, configPath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running %s: %w", editor, err)
	}
	return nil
}
