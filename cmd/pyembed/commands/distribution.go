package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pyembed/internal/adapters/report"
)

func (c *CLI) newDistributionExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "python-distribution-extract <archive> <dest>",
		Short: "Extract a Python distribution archive to a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ExtractDistribution(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *CLI) newDistributionInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "python-distribution-info <archive>",
		Short: "Show information about a Python distribution archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			return c.app.DistributionInfo(cmd.Context(), args[0], format)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func (c *CLI) newDistributionLicensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "python-distribution-licenses <archive>",
		Short: "Show licenses of a Python distribution and its extension libraries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			return c.app.DistributionLicenses(cmd.Context(), args[0], format)
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", string(report.FormatText), "Output format (text or yaml)")
}

func formatFlag(cmd *cobra.Command) (report.Format, error) {
	raw, _ := cmd.Flags().GetString("format")
	return report.ParseFormat(raw)
}
