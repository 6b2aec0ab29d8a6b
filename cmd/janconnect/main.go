// janconnect is the citizen grievance CLI: file civic issue reports,
// draft formal grievance letters with AI assistance, and track
// submissions by tracking id.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"janconnect/internal/config"
	"janconnect/internal/logging"
)

var (
	// Global flags
	verbose  bool
	stateDir string

	cfg    *config.UserConfig
	logger *zap.Logger

	cfgWatcher *config.Watcher
)

var rootCmd = &cobra.Command{
	Use:   "janconnect",
	Short: "JanConnect - citizen grievance reporting and letter drafting",
	Long: `JanConnect connects citizens with their local government.

File civic issue reports through a guided wizard, draft formal grievance
letters with AI assistance (with an offline template fallback), and track
every submission by its tracking id.

In-progress wizards are saved as drafts automatically; run the same
command again to resume where you left off.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if stateDir == "" {
			stateDir = config.DefaultStateDir()
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(stateDir); err != nil {
			logger.Warn("debug logging unavailable", zap.Error(err))
		}

		cfg, err = config.Load(config.DefaultUserConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Pick up config edits made while a wizard is open.
		cfgWatcher, err = config.Watch(config.DefaultUserConfigPath(), func(updated *config.UserConfig) {
			cfg = updated
		})
		if err != nil {
			logging.BootError("config watcher unavailable: %v", err)
		}

		logging.Boot("janconnect starting, state dir %s", stateDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfgWatcher != nil {
			_ = cfgWatcher.Close()
		}
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default ~/.janconnect)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(letterCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
