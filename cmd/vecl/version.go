package main

import (
	"os"

	"github.com/spf13/cobra"

	"vecl/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			useColor, err := colorEnabled(cmd, os.Stdout)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(version.Describe(useColor)))
			return err
		},
	}
}
