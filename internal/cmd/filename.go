package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagescms/cli/internal/filename"
	"github.com/pagescms/cli/internal/schema"
)

// DefaultFilenamePattern is used when neither --pattern nor the entry sets one.
const DefaultFilenamePattern = "{year}-{month}-{day}-{fields.title}.md"

var filenamePatternFlag string

// NewFilenameCmd creates the filename command.
func NewFilenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filename <name> <content-file>",
		Short: "Render a file name for a content entry",
		Long: `Render the file name a content file would be saved under.

Date placeholders {year} {month} {day} {hour} {minute} {second} use the current
time. {fields.title} and {title} read the value of the top-level field
"title"; a field whose name is dotted, such as "meta.slug", is read from the
nested model value by {fields.meta.slug}. Field values are transliterated and
slugified.

The pattern comes from --pattern, then the entry's filename setting, then
` + DefaultFilenamePattern + `.

Examples:
  pcms filename posts content/posts/draft.md
  pcms filename posts draft.md --pattern "{year}/{fields.title}.md"`,
		Args: cobra.ExactArgs(2),
		RunE: runFilename,
	}

	cmd.Flags().StringVar(&filenamePatternFlag, "pattern", "", "Filename pattern")

	return cmd
}

func runFilename(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	entry, err := s.entry(args[0])
	if err != nil {
		return err
	}

	doc, err := readContent(args[1])
	if err != nil {
		return err
	}

	m := newBuilder().CreateModel(entry.Fields, doc.Data)

	pattern := filenamePattern(filenamePatternFlag, entry)
	name, err := filename.New(filename.WithClock(now)).Generate(pattern, entry, m)
	if err != nil {
		return fmt.Errorf("rendering %q: %w", pattern, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}

// filenamePattern picks the flag, then the entry setting, then the default.
func filenamePattern(flag string, entry *schema.Entry) string {
	switch {
	case flag != "":
		return flag
	case entry.Filename != "":
		return entry.Filename
	default:
		return DefaultFilenamePattern
	}
}
