package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillport/internal/taxonomy"
)

var constructsCmd = &cobra.Command{
	Use:   "constructs",
	Short: "List the construct taxonomy",
	Long: `Lists every construct kind the detection engine recognizes, with
its owning platform and canonical examples.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := taxonomy.All()
		fmt.Println(titleStyle.Render(fmt.Sprintf("%d construct kinds", len(defs))))
		for _, d := range defs {
			fmt.Printf("  %s %s\n", okStyle.Render(string(d.Kind)), dimStyle.Render("("+string(d.Platform)+")"))
			for _, ex := range d.Examples {
				fmt.Printf("      e.g. %q\n", ex)
			}
		}
		return nil
	},
}
