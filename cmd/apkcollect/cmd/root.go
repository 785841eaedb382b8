package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"apkcollect/internal/adapters/console"
	"apkcollect/internal/adapters/filesystem"
	"apkcollect/internal/application/commands"
	"apkcollect/internal/config"
)

var (
	sourceRoot string
	destRoot   string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "apkcollect",
	Short: "Collect built APKs into a single directory",
	Long: `apkcollect gathers the APKs a build left under ~/apk-artifacts and copies
them into repo/apk, which is emptied first.

Build suffixes are dropped from each name:
  app-release-unsigned.apk -> app.apk
  app-release.apk          -> app.apk
  app-unsigned.apk         -> app.apk

Names that collide get _1, _2, ... before the extension. A file that cannot
be copied is logged and skipped; the run still succeeds.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.OutOrStdout(), verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	source, err := config.ExpandHome(sourceRoot)
	if err != nil {
		return fmt.Errorf("cannot resolve source root: %w", err)
	}

	collect := commands.NewCollectCommand(
		filesystem.NewSource(source),
		filesystem.NewStore(destRoot),
		logger,
	)

	result, err := collect.Execute(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), console.Summary(result))
	return nil
}

// newLogger writes human-readable lines to w, at debug level when verbose
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&sourceRoot, "source", "s", config.DefaultSourceRoot, "directory searched for APKs")
	rootCmd.Flags().StringVarP(&destRoot, "dest", "d", config.DestRoot(), "directory the APKs are copied into (emptied first)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable debug logging")
}
