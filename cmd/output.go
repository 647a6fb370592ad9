package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

var jsonFlag = flag.Bool("json", false, "Print reports as JSON instead of markdown")
var queryFlag = flag.String("q", "", "JSONPath expression selecting a part of the JSON report (e.g. '$.closing.amount'), implies -json")

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// printReport prints a report view as markdown, or as JSON with -json or -q.
func printReport(view any, render func() string) subcommands.ExitStatus {
	if *jsonFlag || *queryFlag != "" {
		if err := writeJSON(stdout, view, *queryFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(render())
	return subcommands.ExitSuccess
}

// writeJSON writes v indented, or only the part of it selected by the
// JSONPath query.
func writeJSON(w io.Writer, v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if query != "" {
		if out, err = jsonpath.Get(query, out); err != nil {
			return fmt.Errorf("evaluating %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// printMarkdown renders md for the terminal, plain markdown is printed when
// stdout is not a terminal.
func printMarkdown(md string) {
	if f, ok := stdout.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
