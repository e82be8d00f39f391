package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/output"
	"github.com/pagescms/cli/internal/schema"
)

var resolveNameFlag bool

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path|name>",
		Short: "Find the schema entry for a content path or name",
		Long: `Find the schema entry that owns a content path.

The entry whose path is the deepest directory prefix of the given path wins.
With --name the argument is an entry name instead.

Examples:
  pcms resolve content/posts/2024/hello.md
  pcms resolve --name posts`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().BoolVar(&resolveNameFlag, "name", false, "Treat the argument as an entry name")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	var entry *schema.Entry
	if resolveNameFlag {
		entry, err = s.entry(args[0])
	} else {
		entry, err = s.entryForPath(args[0])
	}
	if err != nil {
		return err
	}

	output.Debug("schema resolved", "query", args[0], "entry", entry.Name)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("entry:"), output.StyleNoun.Render(entry.Name))
	if entry.Type != "" {
		fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("type: "), entry.Type)
	}
	if entry.Path != "" {
		fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("path: "), entry.Path)
	}
	if len(entry.Fields) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.RenderFieldTable(fieldRows("", entry.Fields)))
	}
	return nil
}

// fieldRows flattens nested object fields into dotted rows.
func fieldRows(prefix string, fields []schema.Field) []output.FieldRow {
	var rows []output.FieldRow
	for _, f := range fields {
		path := prefix + f.Name
		rows = append(rows, output.FieldRow{
			Path:    path,
			Type:    string(f.Type),
			List:    f.List,
			Default: defaultText(f),
		})
		if f.IsObject() {
			rows = append(rows, fieldRows(path+".", f.Fields)...)
		}
	}
	return rows
}

func defaultText(f schema.Field) string {
	if !f.HasDefault {
		return ""
	}
	b, err := json.Marshal(f.Default)
	if err != nil {
		return fmt.Sprint(f.Default)
	}
	return string(b)
}

// writeEntryTable lists configured entries.
func writeEntryTable(w io.Writer, entries []schema.Entry) {
	t := output.NewTable("NAME", "TYPE", "PATH", "FIELDS")
	for _, e := range entries {
		t.Row(e.Name, string(e.Type), e.Path, fmt.Sprint(len(e.Fields)))
	}
	fmt.Fprintln(w, t.String())
}
