package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"retab/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "retab",
	Short: "Structural repair and PEP 8 formatter for Python sources",
	Long: `retab repairs damaged indentation structure in Python files and
reformats them: block-aware reindent, PEP 8 whitespace, import organization
and a few conservative refactorings.`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(indentCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(refactorCmd)
	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers for directory runs (0 = all CPUs)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the result cache")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		applyColorMode(mode)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
