package main

import (
	"github.com/spf13/cobra"

	"retab/internal/driver"
)

var indentCmd = &cobra.Command{
	Use:   "indent [flags] <path> [path...]",
	Short: "Repair block structure and reindent Python files",
	Long: `indent scans each file into logical lines, repairs structural damage
(orphan else/except clauses, indentation jumps, dedents past the root) and
re-emits the file with canonical indentation. Tokens are never changed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndent,
}

func init() {
	addRunFlags(indentCmd)
}

func runIndent(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args, driver.Passes{Indent: true}, driver.RefactorOps{})
}
