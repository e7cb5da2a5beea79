package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkfz-mic/adeval/internal/projectconfig"
	"github.com/dkfz-mic/adeval/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var interactive, force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a .adeval.yaml project config",
		Long: `Write a .adeval.yaml with the default settings into dir (default: the
current directory). With --interactive, a form asks for each setting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			target := filepath.Join(dir, projectconfig.FileName)
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", target, err)
			}

			cfg := projectconfig.New()
			if interactive {
				var err error
				cfg, err = wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
				if err != nil {
					return err
				}
			}

			path, err := projectconfig.Write(dir, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for each setting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .adeval.yaml")

	return cmd
}
