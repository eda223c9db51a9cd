package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/born-ml/idx/internal/envconfig"
)

var version = "v0.1.0-dev"

// NewCLI builds the idx command tree.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "idx",
		Short:         "Inspect, print, slice and convert matrix files",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: envconfig.LogLevel(),
			})
			slog.SetDefault(slog.New(handler))
		},
	}

	for _, cmd := range []*cobra.Command{
		newInfoCmd(),
		newDumpCmd(),
		newViewCmd(),
		newConvertCmd(),
		newEnvCmd(),
		newVersionCmd(),
	} {
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "idx version %s (%s %s/%s)\n",
				version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
