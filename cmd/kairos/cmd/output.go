package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// failures collects per-input errors so a batch reports every bad input
type failures struct {
	n int
}

func (f *failures) add(w io.Writer, input string, err error) {
	f.n++
	fmt.Fprintf(w, "%s %s\n", inputStyle.Render(input), errorStyle.Render(err.Error()))
}

func (f *failures) err(total int) error {
	if f.n == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d inputs failed", f.n, total)
}
