package internal

import (
	"context"
	"fmt"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/rtchallenge/installdeps/internal/deps"
	"github.com/rtchallenge/installdeps/internal/env"
)

var verbose bool

// Seams for tests.
var (
	findRoot     = env.SourceRoot
	newInstaller = deps.New
)

var rootCmd = &cobra.Command{
	Use:   "install-deps",
	Short: "install-deps vendors the C++ test dependencies",
	Long: `install-deps clones the pinned third-party libraries used by the test suites,
builds them with CMake and installs them below third_party/ in the project root.
Libraries that are already installed are skipped.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		}
	},
	RunE: runInstall,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func runInstall(cmd *cobra.Command, args []string) error {
	log.Debugf("arguments: %q", args)

	root, err := findRoot()
	if err != nil {
		return fmt.Errorf("failed to locate project root: %w", err)
	}
	in := newInstaller(env.Layout{Root: root})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return in.Run(ctx, deps.All...)
}

// Execute runs the root command and returns the process exit status:
// 0 on success, -1 after logging any failure.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("fatal error: %+v", err)
		return -1
	}
	return 0
}
