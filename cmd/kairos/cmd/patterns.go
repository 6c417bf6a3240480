package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List built-in formats",
	RunE:  runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	reply, err := b.Patterns(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		return writeJSON(out, reply)
	}

	fmt.Fprintln(out, titleStyle.Render("Built-in formats"))
	for _, p := range reply.Patterns {
		fmt.Fprintln(out, nameColumn.Render(p.Name)+mutedStyle.Render(p.Kind))
	}
	if len(reply.DetectionFormats) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("Dynamic date formats"))
		for _, f := range reply.DetectionFormats {
			fmt.Fprintln(out, nameColumn.Render(f))
		}
	}
	return nil
}
