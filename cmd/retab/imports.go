package main

import (
	"github.com/spf13/cobra"

	"retab/internal/driver"
)

var importsCmd = &cobra.Command{
	Use:   "imports [flags] <path> [path...]",
	Short: "Organize the top import block",
	Long: `imports sorts the leading import block into stdlib, third-party and
local groups separated by blank lines. Parenthesized imports and anything
after the first non-import statement are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImports,
}

func init() {
	addRunFlags(importsCmd)
}

func runImports(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args, driver.Passes{Indent: true, Imports: true}, driver.RefactorOps{})
}
