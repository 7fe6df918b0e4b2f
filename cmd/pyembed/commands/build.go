package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pyembed/internal/app"
	"go.trai.ch/zerr"
)

// addBuildFlags registers the flags shared by commands that resolve a build context.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "Rust target triple to build for (defaults to the host)")
	cmd.Flags().Bool("release", false, "Build in release mode")
	cmd.Flags().StringP("config", "c", "", "Path to the pyembed config file")
}

func buildOptions(cmd *cobra.Command, projectPath string) app.BuildOptions {
	target, _ := cmd.Flags().GetString("target")
	release, _ := cmd.Flags().GetBool("release")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return app.BuildOptions{
		ProjectPath: projectPath,
		ConfigPath:  configPath,
		Target:      target,
		Release:     release,
		Verbose:     verbose,
	}
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build a pyembed project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return c.app.Build(cmd.Context(), buildOptions(cmd, path))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [path] [-- args...]",
		Short: "Build and run a pyembed application",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, extra := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional, extra = args[:dash], args[dash:]
			}
			if len(positional) > 1 {
				return zerr.With(zerr.New("run accepts at most one project path"), "args", positional)
			}

			path := "."
			if len(positional) == 1 {
				path = positional[0]
			}
			return c.app.Run(cmd.Context(), buildOptions(cmd, path), extra)
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newBuildArtifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-artifacts <dest>",
		Short: "Generate embedding artifacts without building the application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			return c.app.BuildArtifacts(cmd.Context(), buildOptions(cmd, path), args[0])
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().String("path", ".", "Path of the pyembed project")
	return cmd
}
