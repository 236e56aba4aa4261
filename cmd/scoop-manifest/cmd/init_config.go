package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/scoop-manifest/internal/config"
	"github.com/oshokin/scoop-manifest/internal/failure"
)

// newInitConfigCmd builds the command that writes a settings file with defaults.
func newInitConfigCmd() *cobra.Command {
	var (
		cfg   = config.Default()
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a settings file with default values",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return failure.Wrap(failure.Validation, err, "")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if !force {
				_, err := os.Stat(path)

				switch {
				case err == nil:
					return failure.New(failure.Validation, "%s already exists, use --force to overwrite it", path)
				case !errors.Is(err, os.ErrNotExist):
					return fmt.Errorf("check settings file: %w", err)
				}
			}

			if err := config.Save(path, cfg); err != nil {
				return failure.Wrap(failure.Validation, err, "")
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved settings: %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "GitHub API base URL")
	cmd.Flags().StringVar(&cfg.License, "license", "", "license identifier written to manifests")
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", "", "directory for manifests")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
