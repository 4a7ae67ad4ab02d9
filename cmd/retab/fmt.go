package main

import (
	"github.com/spf13/cobra"

	"retab/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Reindent and apply PEP 8 formatting",
	Long: `fmt runs the full formatting pipeline: structural repair and reindent,
then whitespace normalization, operator spacing, comment reflow, blank-line
policy and long-line wrapping per PEP 8.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	addRunFlags(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args, driver.Passes{Indent: true, Format: true}, driver.RefactorOps{})
}
