package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pyembed/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a new Rust application embedding Python",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			pip, _ := cmd.Flags().GetStringArray("pip-install")
			return c.app.Init(cmd.Context(), app.InitOptions{
				Path:       args[0],
				Code:       code,
				PipInstall: pip,
			})
		},
	}
	cmd.Flags().String("code", "", "Python code to evaluate when the application starts")
	cmd.Flags().StringArray("pip-install", nil, "Python package to install with pip (repeatable)")
	return cmd
}
