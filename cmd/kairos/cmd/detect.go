package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect TEXT...",
	Short: "Check whether strings look like dates",
	Long: `Run dynamic date detection on each TEXT with the configured
detection formats (strict_date_optional_time and
"yyyy/MM/dd HH:mm:ss||yyyy/MM/dd" by default).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

type detectOutput struct {
	Input   string `json:"input"`
	Matched bool   `json:"matched"`
	Pattern string `json:"pattern,omitempty"`
	Time    string `json:"time,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	results := make([]detectOutput, 0, len(args))
	for _, text := range args {
		res, err := b.Detect(ctx, text)
		if err != nil {
			return err
		}

		o := detectOutput{Input: text, Matched: res.Matched}
		if res.Matched {
			o.Pattern = res.Pattern
			o.Time = res.Time.UTC().Format(time.RFC3339Nano)
		}
		if outputJSON {
			results = append(results, o)
			continue
		}

		if o.Matched {
			fmt.Fprintf(out, "%s %s %s\n", inputStyle.Render(text), valueStyle.Render("date"), mutedStyle.Render(o.Pattern+" -> "+o.Time))
		} else {
			fmt.Fprintf(out, "%s %s\n", inputStyle.Render(text), errorStyle.Render("not a date"))
		}
	}

	if outputJSON {
		return writeJSON(out, results)
	}
	return nil
}
