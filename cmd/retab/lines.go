package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"retab/internal/config"
	"retab/internal/indent"
	"retab/internal/lineclass"
	"retab/internal/source"
)

var linesCmd = &cobra.Command{
	Use:   "lines [flags] <file>",
	Short: "Dump logical lines with class, keyword and inferred depth",
	Long: `lines is the debugging view of the scanner and the depth inferencer:
one row per logical line with its classification, block keyword, resolved
depth and physical line range.`,
	Args: cobra.ExactArgs(1),
	RunE: runLines,
}

func init() {
	linesCmd.Flags().String("format", "text", "output format (text|json)")
}

type lineJSON struct {
	Index     int    `json:"index"`
	PhysStart int    `json:"phys_start"`
	PhysEnd   int    `json:"phys_end"`
	Class     string `json:"class"`
	Keyword   string `json:"keyword,omitempty"`
	Depth     int    `json:"depth"`
	Content   string `json:"content"`
}

func runLines(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	settings, err := config.Discover(args[0])
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	file := fs.Get(id)

	res, err := indent.Run(file, indent.Config{Unit: settings.Unit(), DetectTabs: true}, indent.Options{})
	if err != nil {
		return err
	}
	if res.Status == indent.StatusRejected {
		return fmt.Errorf("%s: rejected: %s", args[0], res.RejectReason)
	}

	rows := make([]lineJSON, 0, len(res.Lines))
	for i := range res.Lines {
		ll := &res.Lines[i]
		row := lineJSON{
			Index:     ll.Index,
			PhysStart: ll.First().Num,
			PhysEnd:   ll.Phys[len(ll.Phys)-1].Num,
			Class:     ll.Class.String(),
			Depth:     ll.Depth,
			Content:   ll.Content(),
		}
		if ll.Keyword != lineclass.KwNone {
			row.Keyword = ll.Keyword.String()
		}
		rows = append(rows, row)
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	for _, row := range rows {
		span := fmt.Sprintf("%d", row.PhysStart)
		if row.PhysEnd != row.PhysStart {
			span = fmt.Sprintf("%d-%d", row.PhysStart, row.PhysEnd)
		}
		kw := ""
		if row.Keyword != "" {
			kw = " " + row.Keyword
		}
		fmt.Printf("%6s  %-10s depth=%d%s  %s\n", span, row.Class, row.Depth, kw, row.Content)
	}
	return nil
}
