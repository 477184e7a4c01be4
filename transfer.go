package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stickies/internal/service"
)

var (
	exportOut string
	assumeYes bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the board snapshot to a file or stdout",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		core := openCore(nil)
		defer core.Close()

		art := core.Board.Export()
		if exportOut == "-" {
			os.Stdout.Write(art.Data)
			return
		}
		path := exportOut
		if path == "" {
			path = art.Name
		}
		if err := os.WriteFile(path, art.Data, 0644); err != nil {
			fatal("Error writing export", err)
		}
		fmt.Printf("Exported %d cards to %s\n", len(core.Board.ListCards()), path)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge a board snapshot into the board",
	Long: `Import merges an exported snapshot into the saved board. Cards whose id
already exists are overwritten; every other card is kept.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Error reading import", err)
		}

		core := openCore(nil)
		defer core.Close()

		plan, err := core.Board.Import(context.Background(), data, confirmer(os.Stdin, os.Stdout))
		if service.IsDeclined(err) {
			fmt.Println("Import cancelled")
			return
		}
		if err != nil {
			fatal("Error importing", err)
		}
		fmt.Printf("Imported %d cards: %d overwritten, %d new\n", plan.Total, plan.Existing, plan.New)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		core := openCore(nil)
		defer core.Close()

		err := core.Board.DeleteCard(context.Background(), args[0], confirmer(os.Stdin, os.Stdout))
		if service.IsDeclined(err) {
			fmt.Println("Delete cancelled")
			return
		}
		if err != nil {
			fatal("Error deleting card", err)
		}
		fmt.Printf("Card deleted: %s\n", args[0])
	},
}

// confirmer approves everything with --yes and otherwise asks on in.
func confirmer(in io.Reader, out io.Writer) service.Confirmer {
	if assumeYes {
		return service.AlwaysConfirm
	}
	return promptConfirmer{in: bufio.NewReader(in), out: out}
}

// promptConfirmer asks a y/N question on a terminal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, pr service.Prompt) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", pr.Message)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, deleteCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", `Output file ("-" for stdout, default stickies-<time>.json)`)
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}
