package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/goaltrack/internal/app"
	"github.com/sandeepkv93/goaltrack/internal/config"
	"github.com/sandeepkv93/goaltrack/internal/update"
)

type options struct {
	configPath string
	verbose    bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "goaltrack",
		Short: "GoalTrack - daily tasks, goals and weekly reviews",
		Long: `GoalTrack keeps a daily task list, weekly and monthly goals, XP levels and
achievements in one terminal app.

Run without a subcommand to open the dashboard.`,
		Version:       version,
		RunE:          func(cmd *cobra.Command, args []string) error { return runTUI(opts) },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newDoCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// commandLogger is silent unless --verbose is set, so command output stays
// clean for scripts.
func (o *options) commandLogger() *log.Logger {
	if o.verbose {
		return log.New(os.Stderr, "goaltrack ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func (o *options) build(logger *log.Logger) (*app.App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return app.Build(cfg, logger)
}

func runTUI(opts *options) error {
	logPath := filepath.Join(config.DataDir(), "goaltrack.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "goaltrack ")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	a, err := opts.build(log.New(logFile, "goaltrack ", log.LstdFlags))
	if err != nil {
		return err
	}
	defer a.Close()

	program := tea.NewProgram(update.NewModel(a.Store, a.Engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("goaltrack failed: %w", err)
	}
	return nil
}
