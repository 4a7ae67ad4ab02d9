package main

import (
	"github.com/spf13/cobra"

	"retab/internal/driver"
)

var refactorCmd = &cobra.Command{
	Use:   "refactor [flags] <path> [path...]",
	Short: "Apply conservative token-changing rewrites",
	Long: `refactor applies rewrites that do change tokens and therefore run only
on explicit request: removing unused imports, simplifying boolean return
pairs, converting trivially safe %/.format expressions to f-strings.
Without selection flags all three rewrites run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRefactor,
}

func init() {
	addRunFlags(refactorCmd)
	refactorCmd.Flags().Bool("unused-imports", false, "only remove unused imports")
	refactorCmd.Flags().Bool("bool-returns", false, "only simplify boolean return pairs")
	refactorCmd.Flags().Bool("fstrings", false, "only convert %/.format to f-strings")
}

func runRefactor(cmd *cobra.Command, args []string) error {
	var ops driver.RefactorOps
	var err error
	if ops.Unused, err = cmd.Flags().GetBool("unused-imports"); err != nil {
		return err
	}
	if ops.BoolReturns, err = cmd.Flags().GetBool("bool-returns"); err != nil {
		return err
	}
	if ops.FStrings, err = cmd.Flags().GetBool("fstrings"); err != nil {
		return err
	}
	return runPipeline(cmd, args, driver.Passes{Indent: true, Refactor: true}, ops)
}
