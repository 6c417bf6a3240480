package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/kairos/foundation/utils/timex"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/spf13/cobra"
)

var parseOpts struct {
	pattern string
	locale  string
	zone    string
}

var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Parse dates with a pattern",
	Long: `Parse each TEXT with --pattern and print the resolved instant.

Examples:
  kairos parse --pattern epoch_millis 12345.6789
  kairos parse --pattern "strict_date_optional_time||epoch_millis" 2014-05-05 123
  kairos parse --pattern "dd. MMMM yyyy" --locale de --zone Europe/Berlin "10. März 2014"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOpts.pattern, "pattern", "p", "", "pattern, named format or composite (required)")
	parseCmd.Flags().StringVarP(&parseOpts.locale, "locale", "l", "", "locale for textual fields")
	parseCmd.Flags().StringVarP(&parseOpts.zone, "zone", "z", "", "zone for input without offset")
	_ = parseCmd.MarkFlagRequired("pattern")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	Input  string `json:"input"`
	Time   string `json:"time,omitempty"`
	Millis int64  `json:"epoch_millis,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Offset string `json:"offset,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	var failed failures
	results := make([]parseOutput, 0, len(args))

	for _, text := range args {
		reply, err := b.Parse(ctx, service.ParseRequest{
			Pattern: parseOpts.pattern,
			Text:    text,
			Locale:  parseOpts.locale,
			Zone:    parseOpts.zone,
		})
		if err != nil {
			if outputJSON {
				failed.n++
				results = append(results, parseOutput{Input: text, Error: err.Error()})
			} else {
				failed.add(out, text, err)
			}
			continue
		}

		res := parseOutput{
			Input:  text,
			Time:   reply.Time.UTC().Format(time.RFC3339Nano),
			Millis: reply.Time.UnixMilli(),
			Kind:   reply.Kind,
		}
		if reply.HasOffset {
			res.Offset = timex.FormatOffset(reply.Offset, true)
		}
		if outputJSON {
			results = append(results, res)
			continue
		}

		line := fmt.Sprintf("%s %s", inputStyle.Render(text), valueStyle.Render(res.Time))
		if res.Offset != "" {
			line += mutedStyle.Render(" offset " + res.Offset)
		}
		fmt.Fprintln(out, line+mutedStyle.Render(" ("+res.Kind+")"))
	}

	if outputJSON {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	}
	return failed.err(len(args))
}
