package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillport/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println(dimStyle.Render("no conversion runs recorded"))
			return nil
		}

		fmt.Println(titleStyle.Render("Recent conversions"))
		for _, r := range runs {
			line := fmt.Sprintf("  %s  %s → %s  %d file(s), %d warning(s)",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				r.Source, r.Target, r.Files, r.Warnings)
			if r.Failures > 0 {
				line += errStyle.Render(fmt.Sprintf(", %d failure(s)", r.Failures))
			}
			fmt.Println(line)
			fmt.Println(dimStyle.Render("    run " + r.ID))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
}
