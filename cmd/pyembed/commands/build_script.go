package commands

import "github.com/spf13/cobra"

func (c *CLI) newRunBuildScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-build-script <script>",
		Short: "Generate artifacts from a Cargo build script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunBuildScript(cmd.Context(), args[0])
		},
	}
}
