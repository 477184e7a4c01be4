package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards on the board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		core := openCore(nil)
		defer core.Close()

		cards := core.Board.ListCards()
		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(cards); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, c := range cards {
			fmt.Printf("%s  (%g,%g) %gx%g z=%d  %s\n", c.ID, c.X, c.Y, c.Width, c.Height, c.Z, firstLine(c.Text))
		}
	},
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
