package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/oshokin/scoop-manifest/internal/failure"
	"github.com/oshokin/scoop-manifest/internal/service/generator"
	"github.com/oshokin/scoop-manifest/internal/version"
)

// newRootCmd builds the command that generates a Scoop manifest.
func newRootCmd() *cobra.Command {
	var (
		flags        = new(generator.Options)
		maxAssetSize string
	)

	root := &cobra.Command{
		Use:   "scoop-manifest <owner/name> [app_name] [bin_name]",
		Short: "Generate a Scoop manifest from the latest GitHub release",
		Long: "Fetch the most recent release of a GitHub repository, pick its Windows binaries per " +
			"architecture, hash them and write <app_name>.json to the current directory.",
		Example: "  scoop-manifest ikatson/rqbit\n  scoop-manifest ikatson/rqbit rqbit rqbit.exe",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 3)(cmd, args); err != nil {
				return failure.Wrap(failure.Validation, err, "")
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := *flags
			options.Repository = args[0]

			if maxAssetSize != "" {
				size, err := units.RAMInBytes(maxAssetSize)
				if err != nil || size <= 0 {
					return failure.New(failure.Validation, "invalid --max-asset-size %q", maxAssetSize)
				}

				options.MaxAssetSize = size
			}

			if len(args) > 1 {
				options.AppName = args[1]
			}

			if len(args) > 2 {
				options.BinName = args[2]
			}

			result, err := generator.Run(ctx, &options)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved manifest: %s\n", result.Path)

			return nil
		},
	}

	root.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "path to configuration file")
	root.Flags().StringVar(&flags.Token, "token", "", "GitHub token used as a bearer credential")
	root.Flags().StringVar(&flags.License, "license", "", "license identifier written to the manifest")
	root.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVar(&flags.OutputDir, "output-dir", "", "directory for the manifest (default: current directory)")
	root.Flags().StringVar(&flags.APIURL, "api-url", "", "GitHub API base URL, e.g. https://github.example.com/api/v3/")
	root.Flags().StringVar(&maxAssetSize, "max-asset-size", "", "largest asset to download, e.g. 100M or 1G (default: 100M)")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return failure.Wrap(failure.Validation, err, "")
	})

	version.AttachCobraVersionCommand(root)
	root.AddCommand(newInitConfigCmd())

	return root
}

// Execute runs the scoop-manifest CLI and exits with status 1 on any error.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			printError(stderr, failure.New(failure.Unexpected, "%v", r))

			code = 1
		}
	}()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)

		return 1
	}

	return 0
}

// printError writes a single categorised line.
func printError(w io.Writer, err error) {
	message := strings.ReplaceAll(err.Error(), "\n", " ")
	_, _ = fmt.Fprintf(w, "%s error: %s\n", failure.KindOf(err), message)
}
