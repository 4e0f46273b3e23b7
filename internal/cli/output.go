package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// printer writes either JSON values or plain text lines.
type printer struct {
	json bool
	w    io.Writer
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) printer {
	return printer{json: opts.Format == "json", w: cmd.OutOrStdout()}
}

// emit prints v as JSON, or calls text in text mode.
func (p printer) emit(v any, text func(w io.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(p.w)
	return nil
}

// status is a one-line result of a mutating command.
type status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (p printer) status(ok bool, format string, args ...any) error {
	s := status{OK: ok, Message: fmt.Sprintf(format, args...)}
	return p.emit(s, func(w io.Writer) { fmt.Fprintln(w, s.Message) })
}
